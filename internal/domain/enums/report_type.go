package enums

type ReportType string

const (
	ReportTypeUser    ReportType = "user"
	ReportTypeContent ReportType = "content"
)
