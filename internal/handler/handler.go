package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	customError "github.com/weeraman/plantation-erp/pkg/errors"
	"github.com/weeraman/plantation-erp/pkg/response"
)

// respondError translates service errors into HTTP responses. Business
// errors map onto statuses by code; anything else is a 500.
func respondError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !stderrors.As(err, &businessErr) {
		response.InternalServerError(w, "Internal server error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeLoanNotFound,
		customError.ErrCodeAssetNotFound,
		customError.ErrCodeItemNotFound,
		customError.ErrCodeOrderNotFound,
		customError.ErrCodeLandNotFound,
		customError.ErrCodeInvoiceNotFound:
		response.NotFound(w, businessErr.Message)
	case customError.ErrCodeItemAlreadyExists,
		customError.ErrCodeInsufficientStock,
		customError.ErrCodeLoanNotActive,
		customError.ErrCodeNoPendingEntries,
		customError.ErrCodeEntryAlreadyPaid,
		customError.ErrCodeOrderNotDeletable:
		response.Conflict(w, businessErr.Message, businessErr.Err)
	case customError.ErrCodeInvalidLoanTerms, customError.ErrCodeInvalidInput:
		response.BadRequest(w, businessErr.Message, businessErr.Err)
	default:
		response.InternalServerError(w, businessErr.Message, businessErr.Err)
	}
}

// pathID parses the named mux variable as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}
