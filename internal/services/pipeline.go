package services

import (
	"context"
	"net/http"

	"github.com/RouqX7/AthleteConnect/internal/response"
	"github.com/RouqX7/AthleteConnect/internal/validation"
)

// Run is the validate-then-persist pipeline shared by every write path.
// The input is validated in full before op runs; an input that fails any
// constraint never reaches the store. Violations map to 400 with every
// failed field in the message, store errors map through their AppError
// code, and success wraps the result in an OK envelope.
func Run[T, R any](
	ctx context.Context,
	v *validation.Validator,
	input *T,
	op func(context.Context, *T) (R, error),
	okMsg, errMsg string,
) response.Response[R] {
	if violations := v.Struct(*input); len(violations) > 0 {
		return response.Fail[R](http.StatusBadRequest, errMsg+": "+validation.Aggregate(violations))
	}

	result, err := op(ctx, input)
	if err != nil {
		return response.FromError[R](err, errMsg)
	}
	return response.Ok(http.StatusOK, okMsg, result)
}
