package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/the12thplayer/predict/internal/adapters/artifact"
	"github.com/the12thplayer/predict/internal/adapters/dataset"
	"github.com/the12thplayer/predict/internal/adapters/livedata"
	service "github.com/the12thplayer/predict/internal/app"
	"github.com/the12thplayer/predict/internal/domain/matchodds"
	"github.com/the12thplayer/predict/internal/domain/newscred"
	"github.com/the12thplayer/predict/internal/domain/ranking"
	"github.com/the12thplayer/predict/internal/domain/scouting"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// NewKind tags a sentinel error with the operation that raised it.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// Wrap annotates an arbitrary error with the operation.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// mapError translates a domain error into an HTTP status code and the
// machine-readable kind reported in the error body. Unknown teams and
// fixtures without upstream data are resource misses, not bad requests.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ranking.ErrNoTeams),
		errors.Is(err, matchodds.ErrSameTeams),
		errors.Is(err, scouting.ErrInvalidPosition),
		errors.Is(err, scouting.ErrInvalidLimit),
		errors.Is(err, artifact.ErrUnknownPosition),
		errors.Is(err, newscred.ErrEmptyArticle):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, dataset.ErrNotFound),
		errors.Is(err, dataset.ErrInsufficientHistory),
		errors.Is(err, ranking.ErrUnknownTeam),
		errors.Is(err, matchodds.ErrUnknownTeam),
		errors.Is(err, livedata.ErrTeamNotMapped),
		errors.Is(err, livedata.ErrMatchNotFound),
		errors.Is(err, service.ErrUnknownModel):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, livedata.ErrUpstream):
		return http.StatusBadGateway, "upstream_unavailable"
	case errors.Is(err, artifact.ErrModelUnavailable):
		return http.StatusInternalServerError, "model_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
