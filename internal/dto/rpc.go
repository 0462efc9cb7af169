package dto

import "encoding/json"

// RPC method names accepted by the ajax endpoint.
const (
	MethodGetLearningPaths = "block_learningpath_get_learningpath"
	MethodGetDetailLine    = "block_learningpath_get_detail_line"
)

// RPCCall is one entry of an ajax batch request.
type RPCCall struct {
	Index      int             `json:"index" validate:"min=0"`
	MethodName string          `json:"methodname" validate:"required"`
	Args       json.RawMessage `json:"args"`
}

// RPCException describes a failed call.
type RPCException struct {
	ErrorCode string `json:"errorcode"`
	Message   string `json:"message"`
}

// RPCResult is one entry of an ajax batch response.
type RPCResult struct {
	Error     bool          `json:"error"`
	Data      interface{}   `json:"data,omitempty"`
	Exception *RPCException `json:"exception,omitempty"`
}

// DetailLineArgs are the arguments of MethodGetDetailLine.
type DetailLineArgs struct {
	PathID int64 `json:"lpt_id" validate:"required,min=1"`
	UserID int64 `json:"u_id" validate:"required,min=1"`
}

// LearningPathDetailQuery binds the REST detail endpoint.
type LearningPathDetailQuery struct {
	UserID int64 `form:"userId" validate:"omitempty,min=1"`
}

// LearningPathIndexQuery binds the admin index endpoint.
type LearningPathIndexQuery struct {
	Search    string `form:"search"`
	Published *bool  `form:"published"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=id name startdate enddate credit"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
}
