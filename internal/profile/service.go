package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/jobboard/internal/parsing"
	"github.com/jonathan/jobboard/internal/types"
)

// maxAttempts bounds re-reads after a version conflict.
const maxAttempts = 3

// Store persists profiles.
type Store interface {
	// GetProfile returns nil, nil when the profile does not exist.
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
	// SaveProfile writes p if the stored version still equals p.Version,
	// then bumps p.Version and p.UpdatedAt. Otherwise it returns
	// ErrVersionConflict.
	SaveProfile(ctx context.Context, p *types.UserProfile) error
}

// Service reads and updates profiles with per-profile mutual exclusion.
type Service struct {
	store  Store
	locker Locker
	log    zerolog.Logger
}

// NewService creates a Service. A nil locker means an in-process lock.
func NewService(store Store, locker Locker, log zerolog.Logger) *Service {
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &Service{store: store, locker: locker, log: log}
}

// Get returns the profile or a *NotFoundError.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &NotFoundError{UserID: userID}
	}
	return p, nil
}

// ApplyExtraction reconciles extracted resume data into the profile.
func (s *Service) ApplyExtraction(ctx context.Context, userID uuid.UUID, data *types.ExtractedProfileData, pol Policies) (*types.UserProfile, error) {
	return s.update(ctx, userID, func(p *types.UserProfile) (*types.UserProfile, error) {
		return Reconcile(p, data, pol), nil
	})
}

// AddSkill adds one skill. Names are unique per profile, ignoring case.
func (s *Service) AddSkill(ctx context.Context, userID uuid.UUID, req *types.AddSkillRequest) (*types.UserProfile, error) {
	skill := parsing.NewSkill(req.Name, req.Level, req.Category)
	if cat, ok := parseCategory(req.Category); ok {
		skill.Category = cat
	}

	return s.update(ctx, userID, func(p *types.UserProfile) (*types.UserProfile, error) {
		for _, existing := range p.Skills {
			if strings.EqualFold(existing.Name, skill.Name) {
				return nil, &SkillExistsError{Name: skill.Name}
			}
		}
		next := p.Clone()
		next.Skills = append(next.Skills, skill)
		return next, nil
	})
}

// RemoveSkill removes the skill with the given id.
func (s *Service) RemoveSkill(ctx context.Context, userID uuid.UUID, skillID string) (*types.UserProfile, error) {
	return s.update(ctx, userID, func(p *types.UserProfile) (*types.UserProfile, error) {
		next := p.Clone()
		var removed bool
		next.Skills, removed = deleteEntry(next.Skills, skillID, func(sk types.Skill) string { return sk.ID })
		if !removed {
			return nil, &SkillNotFoundError{SkillID: skillID}
		}
		return next, nil
	})
}

// update runs a read-modify-write cycle under the profile lock, re-reading
// on version conflicts. Nothing is written once ctx is done.
func (s *Service) update(ctx context.Context, userID uuid.UUID, mutate func(*types.UserProfile) (*types.UserProfile, error)) (*types.UserProfile, error) {
	unlock, err := s.locker.Lock(ctx, "profile:"+userID.String())
	if err != nil {
		return nil, err
	}
	defer unlock()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		current, err := s.Get(ctx, userID)
		if err != nil {
			return nil, err
		}

		next, err := mutate(current)
		if err != nil {
			return nil, err
		}
		assignIDs(next)

		if err := ctx.Err(); err != nil {
			s.log.Info().Str("user_id", userID.String()).Msg("request abandoned before profile write")
			return nil, err
		}

		err = s.store.SaveProfile(ctx, next)
		if errors.Is(err, ErrVersionConflict) {
			s.log.Warn().Str("user_id", userID.String()).Int("attempt", attempt).Msg("profile version conflict, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}
		return next, nil
	}
	return nil, ErrVersionConflict
}

// assignIDs gives new collection entries a stable id.
func assignIDs(p *types.UserProfile) {
	for i := range p.Experience {
		if p.Experience[i].ID == "" {
			p.Experience[i].ID = uuid.NewString()
		}
	}
	for i := range p.Education {
		if p.Education[i].ID == "" {
			p.Education[i].ID = uuid.NewString()
		}
	}
	for i := range p.Projects {
		if p.Projects[i].ID == "" {
			p.Projects[i].ID = uuid.NewString()
		}
	}
	for i := range p.Skills {
		if p.Skills[i].ID == "" {
			p.Skills[i].ID = uuid.NewString()
		}
	}
}

func parseCategory(s string) (types.SkillCategory, bool) {
	for _, c := range []types.SkillCategory{
		types.CategoryProgramming, types.CategoryFramework, types.CategoryDatabase,
		types.CategoryTool, types.CategorySoftSkill, types.CategoryOther,
	} {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, true
		}
	}
	return "", false
}
