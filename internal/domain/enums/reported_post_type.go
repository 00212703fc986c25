package enums

type ReportedPostType string

const (
	ReportedPostTypeQuestion ReportedPostType = "question"
	ReportedPostTypeReply    ReportedPostType = "reply"
)
