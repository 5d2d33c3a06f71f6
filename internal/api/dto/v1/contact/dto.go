package contact

// ContactRequest is the JSON body of POST /api/contact as sent by the site.
// The server decodes into a generic map instead so that wrongly typed
// fields become validation errors rather than decode errors.
type ContactRequest struct {
	Email         string `json:"email"`
	Message       string `json:"message"`
	Honeypot      string `json:"honeypot"`
	Website       string `json:"website"`
	FormStartTime string `json:"formStartTime"`
}
