package models

// SettingsID is the fixed id of the singleton global settings row.
const SettingsID = "global_settings"

// GlobalSettings holds the two optional music URLs played before and
// after the proposal is accepted. Exactly one row exists per
// deployment; it is created lazily on first read.
type GlobalSettings struct {
	ID                string `json:"id"`
	BeforeAcceptMusic string `json:"before_accept_music"`
	AfterAcceptMusic  string `json:"after_accept_music"`
}

// UpdateSettingsRequest updates only the provided fields.
type UpdateSettingsRequest struct {
	BeforeAcceptMusic *string `json:"before_accept_music"`
	AfterAcceptMusic  *string `json:"after_accept_music"`
}
