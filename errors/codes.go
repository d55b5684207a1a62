package errors

import "strconv"

// ErrorCode identifies an application error in API responses
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = 0
	ErrorCode_HTTP_OK     ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1002
	ErrorCode_NOT_FOUND        ErrorCode = 1003
	ErrorCode_UNAVAILABLE      ErrorCode = 1004

	// Sessions
	ErrorCode_SESSION_NOT_FOUND ErrorCode = 2000
	ErrorCode_SESSION_NOT_READY ErrorCode = 2001
	ErrorCode_SESSION_BUSY      ErrorCode = 2002

	// Pipeline
	ErrorCode_PIPELINE_INVALID_URL          ErrorCode = 3000
	ErrorCode_PIPELINE_FETCH_FAILED         ErrorCode = 3001
	ErrorCode_PIPELINE_TRANSCRIPTION_FAILED ErrorCode = 3002
	ErrorCode_PIPELINE_INVALID_SEGMENT      ErrorCode = 3003
	ErrorCode_PIPELINE_INDEX_FAILED         ErrorCode = 3004
	ErrorCode_PIPELINE_CHAT_SESSION_FAILED  ErrorCode = 3005

	// Chat
	ErrorCode_CHAT_EMPTY_QUESTION ErrorCode = 4000
	ErrorCode_CHAT_ASK_FAILED     ErrorCode = 4001

	// Archive
	ErrorCode_TRANSCRIPT_NOT_FOUND ErrorCode = 5000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                   "UNSPECIFIED",
	ErrorCode_HTTP_OK:                       "HTTP_OK",
	ErrorCode_INTERNAL:                      "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:              "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:               "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                     "NOT_FOUND",
	ErrorCode_UNAVAILABLE:                   "UNAVAILABLE",
	ErrorCode_SESSION_NOT_FOUND:             "SESSION_NOT_FOUND",
	ErrorCode_SESSION_NOT_READY:             "SESSION_NOT_READY",
	ErrorCode_SESSION_BUSY:                  "SESSION_BUSY",
	ErrorCode_PIPELINE_INVALID_URL:          "PIPELINE_INVALID_URL",
	ErrorCode_PIPELINE_FETCH_FAILED:         "PIPELINE_FETCH_FAILED",
	ErrorCode_PIPELINE_TRANSCRIPTION_FAILED: "PIPELINE_TRANSCRIPTION_FAILED",
	ErrorCode_PIPELINE_INVALID_SEGMENT:      "PIPELINE_INVALID_SEGMENT",
	ErrorCode_PIPELINE_INDEX_FAILED:         "PIPELINE_INDEX_FAILED",
	ErrorCode_PIPELINE_CHAT_SESSION_FAILED:  "PIPELINE_CHAT_SESSION_FAILED",
	ErrorCode_CHAT_EMPTY_QUESTION:           "CHAT_EMPTY_QUESTION",
	ErrorCode_CHAT_ASK_FAILED:               "CHAT_ASK_FAILED",
	ErrorCode_TRANSCRIPT_NOT_FOUND:          "TRANSCRIPT_NOT_FOUND",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}
