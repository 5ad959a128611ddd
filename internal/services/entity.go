package services

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RouqX7/AthleteConnect/internal/database"
	"github.com/RouqX7/AthleteConnect/internal/response"
	"github.com/RouqX7/AthleteConnect/internal/utils"
	"github.com/RouqX7/AthleteConnect/internal/validation"
)

// EntityInfo carries the per-kind knowledge the generic service needs:
// how to stamp the id, which defaults a fresh record gets, and which
// field records the last edit.
type EntityInfo[T any] struct {
	Kind  string
	SetID func(record *T, id string)

	// Defaults stamps the owner and creation-time defaults onto a fresh
	// record before validation. The owner is the authenticated uid.
	Defaults func(record *T, ownerID string, now time.Time)

	// TouchField is the wire name of the last-edit timestamp, stamped on
	// every partial update. Empty for kinds that are never edited.
	TouchField string
}

// EntityService implements create/get/list/update/delete for one entity
// kind against its store. All methods return the uniform envelope.
type EntityService[T any] struct {
	info     EntityInfo[T]
	store    database.Store[T]
	validate *validation.Validator
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

func NewEntityService[T any](info EntityInfo[T], store database.Store[T], validate *validation.Validator, logger *zap.Logger) *EntityService[T] {
	return &EntityService[T]{
		info:     info,
		store:    store,
		validate: validate,
		logger:   logger.With(zap.String("entity", info.Kind)),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Kind names the entity this service manages.
func (s *EntityService[T]) Kind() string {
	return s.info.Kind
}

// Create stamps a server-generated id and the kind's defaults onto the
// input, validates the result, and persists it. Any id supplied by the
// caller is overwritten; the envelope carries the generated id.
func (s *EntityService[T]) Create(ctx context.Context, ownerID string, input *T) response.Response[string] {
	if ownerID == "" {
		return response.Fail[string](http.StatusBadRequest, "missing authenticated user")
	}

	id := s.newID()
	now := s.now().UTC()
	s.info.SetID(input, id)
	s.info.Defaults(input, ownerID, now)

	return Run(ctx, s.validate, input,
		func(ctx context.Context, record *T) (string, error) {
			if _, err := s.store.Add(ctx, id, record); err != nil {
				return "", err
			}
			s.logger.Info("record created", zap.String("id", id))
			return id, nil
		},
		s.info.Kind+" created successfully",
		"failed to create "+s.info.Kind,
	)
}

func (s *EntityService[T]) Get(ctx context.Context, id string) response.Response[T] {
	if id == "" {
		return response.Fail[T](http.StatusBadRequest, "missing "+s.info.Kind+" id")
	}

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return response.FromError[T](err, "failed to fetch "+s.info.Kind)
	}
	return response.Ok(http.StatusOK, s.info.Kind+" fetched successfully", *record)
}

// List returns every record of the kind. An empty collection is a
// success with an empty, non-nil list.
func (s *EntityService[T]) List(ctx context.Context) response.Response[[]*T] {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return response.FromError[[]*T](err, "failed to list "+s.info.Kind+" records")
	}
	if records == nil {
		records = []*T{}
	}
	return response.Ok(http.StatusOK, s.info.Kind+" records fetched successfully", records)
}

// GetByField returns all records whose field equals value. No matches is
// a success with an empty list, same as List.
func (s *EntityService[T]) GetByField(ctx context.Context, field, value string) response.Response[[]*T] {
	if field == "" {
		return response.Fail[[]*T](http.StatusBadRequest, "missing filter field")
	}

	records, err := s.store.GetByField(ctx, field, value)
	if err != nil {
		return response.FromError[[]*T](err, "failed to query "+s.info.Kind+" records")
	}
	if records == nil {
		records = []*T{}
	}
	return response.Ok(http.StatusOK, s.info.Kind+" records fetched successfully", records)
}

// Update merges the supplied fields into the stored record, validates the
// merged result, and persists only the supplied fields plus the touch
// timestamp. Unknown keys and the id are dropped before the merge; a
// merge that fails validation leaves the stored record unchanged.
func (s *EntityService[T]) Update(ctx context.Context, id string, input map[string]any) response.Response[T] {
	if id == "" {
		return response.Fail[T](http.StatusBadRequest, "missing "+s.info.Kind+" id")
	}

	partial := validation.StripUnknown[T](input)
	if len(partial) == 0 {
		return response.Fail[T](http.StatusBadRequest, "no updatable fields supplied")
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return response.FromError[T](err, "failed to update "+s.info.Kind)
	}

	merged, err := mergeRecord(current, partial)
	if err != nil {
		return response.Fail[T](http.StatusBadRequest, "failed to update "+s.info.Kind+": "+err.Error())
	}
	if violations := s.validate.Struct(*merged); len(violations) > 0 {
		return response.Fail[T](http.StatusBadRequest, "failed to update "+s.info.Kind+": "+validation.Aggregate(violations))
	}

	if s.info.TouchField != "" {
		partial[s.info.TouchField] = s.now().UTC()
	}
	if err := s.store.Update(ctx, id, partial); err != nil {
		return response.FromError[T](err, "failed to update "+s.info.Kind)
	}

	updated, err := s.store.Get(ctx, id)
	if err != nil {
		return response.FromError[T](err, "failed to fetch updated "+s.info.Kind)
	}
	s.logger.Info("record updated", zap.String("id", id))
	return response.Ok(http.StatusOK, s.info.Kind+" updated successfully", *updated)
}

// Delete removes the record at id. Deleting an absent id succeeds.
func (s *EntityService[T]) Delete(ctx context.Context, id string) response.Response[string] {
	if id == "" {
		return response.Fail[string](http.StatusBadRequest, "missing "+s.info.Kind+" id")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return response.FromError[string](err, "failed to delete "+s.info.Kind)
	}
	s.logger.Info("record deleted", zap.String("id", id))
	return response.Ok(http.StatusOK, s.info.Kind+" deleted successfully", id)
}

// mergeRecord overlays the partial update onto the stored record through a
// JSON round trip, so field types are coerced exactly as they would be on
// create. A partial value that cannot decode into the record type is a
// bad-input error, not a store error.
func mergeRecord[T any](current *T, partial map[string]any) (*T, error) {
	buf, err := json.Marshal(current)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to encode record", err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to decode record", err)
	}

	for k, v := range partial {
		doc[k] = v
	}

	buf, err = json.Marshal(doc)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to encode merged record", err)
	}
	var merged T
	if err := json.Unmarshal(buf, &merged); err != nil {
		return nil, utils.NewInvalidInputError("update fields do not match the record shape")
	}
	return &merged, nil
}
