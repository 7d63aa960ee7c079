package api

type RecordRequest struct {
	UserID string `json:"user_id"`
}

type RecordResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type DayRecord struct {
	Date     string `json:"date"`
	Label    string `json:"label"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Duration string `json:"duration,omitempty"`
}

type BucketTotal struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type UserReport struct {
	UserID string        `json:"user_id"`
	Days   []DayRecord   `json:"days,omitempty"`
	Totals []BucketTotal `json:"totals"`
}

type PeriodReport struct {
	Period string       `json:"period"`
	From   string       `json:"from"`
	To     string       `json:"to"`
	Users  []UserReport `json:"users"`
}
