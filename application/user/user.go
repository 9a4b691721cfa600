package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/contacts/cmd/config"
	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/mapper"
	"github.com/muhammadheryan/contacts/model"
	redisrepo "github.com/muhammadheryan/contacts/repository/redis"
	userrepo "github.com/muhammadheryan/contacts/repository/user"
	"github.com/muhammadheryan/contacts/thirdparty/rabbitmq"
	cerr "github.com/muhammadheryan/contacts/utils/errors"
	"github.com/muhammadheryan/contacts/utils/logger"
	"go.uber.org/zap"
)

type UserApp interface {
	List(ctx context.Context) ([]model.User, error)
	Search(ctx context.Context, query string) ([]model.User, error)
	Get(ctx context.Context, id uint64) (*model.User, error)
	Create(ctx context.Context, payload model.UserPayload) (*model.User, error)
	Update(ctx context.Context, id uint64, payload model.UserPayload) (*model.User, error)
	Delete(ctx context.Context, id uint64) error
	Health(ctx context.Context) (*model.HealthResponse, error)
}

type UserAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
	publisher rabbitmq.EventPublisher
}

// NewUserApp wires the use cases. redisRepo and publisher may be nil.
func NewUserApp(config *config.Config, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository, publisher rabbitmq.EventPublisher) UserApp {
	return &UserAppImpl{
		config:    config,
		userRepo:  userRepo,
		redisRepo: redisRepo,
		publisher: publisher,
	}
}

func (s *UserAppImpl) List(ctx context.Context) ([]model.User, error) {
	entities, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, s.repoError(ctx, "[List] err userRepo.List", err)
	}
	return mapper.ToWireList(entities), nil
}

func (s *UserAppImpl) Search(ctx context.Context, query string) ([]model.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	entities, err := s.userRepo.Search(ctx, query)
	if err != nil {
		return nil, s.repoError(ctx, "[Search] err userRepo.Search", err)
	}
	return mapper.ToWireList(entities), nil
}

func (s *UserAppImpl) Get(ctx context.Context, id uint64) (*model.User, error) {
	if s.redisRepo != nil {
		cached, err := s.redisRepo.GetUser(ctx, id)
		if err != nil {
			logger.Ctx(ctx).Warn("[Get] err redisRepo.GetUser", zap.Uint64("id", id), zap.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	entity, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError(ctx, "[Get] err userRepo.GetByID", err)
	}

	user := mapper.ToWire(entity)
	s.cacheUser(ctx, &user)
	return &user, nil
}

func (s *UserAppImpl) Create(ctx context.Context, payload model.UserPayload) (*model.User, error) {
	input := mapper.Resolve(payload)
	if violations := validateInput(input, false); len(violations) > 0 {
		return nil, cerr.SetCustomError(constant.ErrValidation).WithFieldErrors(violations)
	}

	entity, err := s.userRepo.Create(ctx, mapper.ToEntity(input))
	if err != nil {
		return nil, s.repoError(ctx, "[Create] err userRepo.Create", err)
	}

	user := mapper.ToWire(entity)
	s.publish(ctx, constant.UserEventCreated, user.ID, &user)
	return &user, nil
}

func (s *UserAppImpl) Update(ctx context.Context, id uint64, payload model.UserPayload) (*model.User, error) {
	input := mapper.Resolve(payload)
	if violations := validateInput(input, true); len(violations) > 0 {
		return nil, cerr.SetCustomError(constant.ErrValidation).WithFieldErrors(violations)
	}

	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError(ctx, "[Update] err userRepo.GetByID", err)
	}

	patch := mapper.ToPatch(input)
	if len(patch) == 0 {
		user := mapper.ToWire(existing)
		return &user, nil
	}

	if err := s.evictUser(ctx, id); err != nil {
		logger.Ctx(ctx).Error("[Update] err redisRepo.DeleteUser", zap.Uint64("id", id), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal).WithDetail(err)
	}

	entity, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, s.repoError(ctx, "[Update] err userRepo.Update", err)
	}

	user := mapper.ToWire(entity)
	s.evictAfterWrite(ctx, id)
	s.publish(ctx, constant.UserEventUpdated, user.ID, &user)
	return &user, nil
}

func (s *UserAppImpl) Delete(ctx context.Context, id uint64) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return s.repoError(ctx, "[Delete] err userRepo.GetByID", err)
	}

	if err := s.evictUser(ctx, id); err != nil {
		logger.Ctx(ctx).Error("[Delete] err redisRepo.DeleteUser", zap.Uint64("id", id), zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal).WithDetail(err)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return s.repoError(ctx, "[Delete] err userRepo.Delete", err)
	}

	s.evictAfterWrite(ctx, id)
	s.publish(ctx, constant.UserEventDeleted, id, nil)
	return nil
}

func (s *UserAppImpl) Health(ctx context.Context) (*model.HealthResponse, error) {
	if err := s.userRepo.Ping(ctx); err != nil {
		logger.Ctx(ctx).Error("[Health] err userRepo.Ping", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal).WithDetail(err)
	}
	return &model.HealthResponse{
		Status:    "success",
		Message:   "Database connection is healthy",
		Timestamp: time.Now().UTC(),
	}, nil
}

// repoError maps repository failures onto the error taxonomy. Only unrecognised failures are
// logged; they carry the diagnostic detail for development responses.
func (s *UserAppImpl) repoError(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, userrepo.ErrNotFound):
		return cerr.SetCustomError(constant.ErrNotFound)
	case errors.Is(err, userrepo.ErrDuplicateEmail):
		return cerr.SetCustomError(constant.ErrEmailExists)
	}
	logger.Ctx(ctx).Error(msg, zap.String("error", err.Error()))
	return cerr.SetCustomError(constant.ErrInternal).WithDetail(err)
}

func (s *UserAppImpl) cacheUser(ctx context.Context, user *model.User) {
	if s.redisRepo == nil {
		return
	}
	if err := s.redisRepo.SetUser(ctx, user, s.config.Redis.UserCacheTTL); err != nil {
		logger.Ctx(ctx).Warn("[Get] err redisRepo.SetUser", zap.Uint64("id", user.ID), zap.String("error", err.Error()))
	}
}

// evictUser drops the cached copy of id. Mutations abort when it fails.
func (s *UserAppImpl) evictUser(ctx context.Context, id uint64) error {
	if s.redisRepo == nil {
		return nil
	}
	return s.redisRepo.DeleteUser(ctx, id)
}

// evictAfterWrite drops a copy cached by a Get that raced the write.
func (s *UserAppImpl) evictAfterWrite(ctx context.Context, id uint64) {
	if err := s.evictUser(ctx, id); err != nil {
		logger.Ctx(ctx).Warn("err redisRepo.DeleteUser after write", zap.Uint64("id", id), zap.String("error", err.Error()))
	}
}

// publish emits a user event; failures never fail the request.
func (s *UserAppImpl) publish(ctx context.Context, event constant.UserEvent, id uint64, user *model.User) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.UserEventMessage{
		EventID:    uuid.NewString(),
		Event:      event,
		UserID:     id,
		OccurredAt: time.Now().UTC(),
		User:       user,
	}
	if err := s.publisher.PublishUserEvent(ctx, msg); err != nil {
		logger.Ctx(ctx).Error("err publisher.PublishUserEvent", zap.String("event", string(event)), zap.String("error", err.Error()))
	}
}
