package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/learningpath-api/internal/dto"
	"github.com/noah-isme/learningpath-api/internal/models"
	appErrors "github.com/noah-isme/learningpath-api/pkg/errors"
	"github.com/noah-isme/learningpath-api/pkg/response"
)

// RPCHandler serves LMS style ajax batches of {index, methodname, args}.
// Response payloads use this API's camelCase keys.
type RPCHandler struct {
	service   learningPathService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRPCHandler constructs the handler.
func NewRPCHandler(service learningPathService, validate *validator.Validate, logger *zap.Logger) *RPCHandler {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RPCHandler{service: service, validator: validate, logger: logger}
}

// Dispatch godoc
// @Summary Batch RPC endpoint
// @Description Accepts [{index, methodname, args}] and answers [{error, data|exception}] in order. Calls after the first failure are not executed.
// @Tags RPC
// @Accept json
// @Produce json
// @Param calls body []dto.RPCCall true "Calls"
// @Success 200 {array} dto.RPCResult
// @Router /ajax [post]
func (h *RPCHandler) Dispatch(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		return
	}

	var calls []dto.RPCCall
	if err := c.ShouldBindJSON(&calls); err != nil {
		response.Error(c, appErrors.Validation(err, "request body must be an array of calls"))
		return
	}

	results := make([]dto.RPCResult, 0, len(calls))
	for _, call := range calls {
		data, err := h.invoke(c, claims, call)
		if err != nil {
			appErr := appErrors.FromError(err)
			h.logger.Info("rpc call failed",
				zap.String("method", call.MethodName),
				zap.Int("index", call.Index),
				zap.String("code", appErr.Code),
			)
			results = append(results, dto.RPCResult{
				Error:     true,
				Exception: &dto.RPCException{ErrorCode: rpcErrorCode(call.MethodName, appErr), Message: appErr.Message},
			})
			break
		}
		results = append(results, dto.RPCResult{Data: data})
	}
	response.Raw(c, http.StatusOK, results)
}

func (h *RPCHandler) invoke(c *gin.Context, claims *models.JWTClaims, call dto.RPCCall) (interface{}, error) {
	if err := h.validator.Struct(call); err != nil {
		return nil, appErrors.Validation(err, "invalid call")
	}
	ctx := c.Request.Context()

	switch call.MethodName {
	case dto.MethodGetLearningPaths:
		summaries, _, err := h.service.ListPaths(ctx, claims.UserID)
		return summaries, err
	case dto.MethodGetDetailLine:
		var args dto.DetailLineArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return nil, appErrors.Validation(err, "invalid arguments")
		}
		if err := h.validator.Struct(args); err != nil {
			return nil, appErrors.Validation(err, "lpt_id and u_id are required")
		}
		if !claims.CanActFor(args.UserID) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot view another user's progress")
		}
		return h.service.GetPathDetail(ctx, args.PathID, args.UserID)
	default:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown method "+call.MethodName)
	}
}

// rpcErrorCode keeps the error codes the block front end already understands.
func rpcErrorCode(method string, err *appErrors.Error) string {
	switch {
	case appErrors.Is(err, appErrors.ErrNotFound) && method == dto.MethodGetDetailLine:
		return "invalidlearningpath"
	case appErrors.Is(err, appErrors.ErrNotFound):
		return "servicenotavailable"
	case appErrors.Is(err, appErrors.ErrValidation):
		return "invalidparameter"
	case appErrors.Is(err, appErrors.ErrForbidden):
		return "nopermissions"
	default:
		return strings.ToLower(err.Code)
	}
}
