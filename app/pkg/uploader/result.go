package uploader

// Resolve/finalize outcomes use stable business codes so clients can
// branch without parsing messages.
const (
	CodeUploadSuccess = 2001 // object is complete, url usable
	CodeUploading     = 2002 // session open, some chunks durable
	CodeNotUploaded   = 2003 // no usable state, client starts fresh
	CodeUploadFailed  = 5001 // session unrecoverable
)

// Result what the coordinator knows about a fingerprint
type Result struct {
	Code int `json:"code"`
	// SessionId identifies the completed session, set with every 2001
	SessionId    int64  `json:"sessionId,omitempty"`
	SessionToken string `json:"sessionToken,omitempty"`
	Url          string `json:"url,omitempty"`
	// chunk indices the backend durably holds, only set while UPLOADING
	Uploaded []int `json:"uploaded,omitempty"`
	// chunk indices still needed, only set by a finalize that found gaps
	Missing []int `json:"missing,omitempty"`
}
