package usecase

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"sharebin/internal/audit"
	"sharebin/internal/domain/entity"
	"sharebin/internal/domain/repository"
	"sharebin/pkg/errors"
	"sharebin/pkg/shortid"
)

type ShortLinkUseCase struct {
	txm       repository.TxManager
	links     repository.ShortLinkRepository
	auditRepo repository.AuditRepository
	settings  *SettingUseCase
}

func NewShortLinkUseCase(
	txm repository.TxManager,
	links repository.ShortLinkRepository,
	auditRepo repository.AuditRepository,
	settings *SettingUseCase,
) *ShortLinkUseCase {
	return &ShortLinkUseCase{
		txm:       txm,
		links:     links,
		auditRepo: auditRepo,
		settings:  settings,
	}
}

type CreateShortLinkInput struct {
	TargetURL string
	Vanity    string
}

// Create shortens a URL. A requested vanity code is taken as-is or
// refused; generated codes retry on collision like every other short
// identifier.
func (uc *ShortLinkUseCase) Create(ctx context.Context, user *entity.User, input CreateShortLinkInput) (*entity.ShortLink, error) {
	if !uc.settings.GetBool(ctx, SettingShortenerEnabled, true) {
		return nil, errors.BadRequest("URL shortening is disabled", nil)
	}

	parsed, err := url.Parse(input.TargetURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, errors.BadRequest("Target must be an absolute http or https URL", err)
	}

	var code string
	vanity := input.Vanity != ""
	if vanity {
		taken, err := uc.links.CodeExists(ctx, input.Vanity)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.Conflict("Vanity code is already taken")
		}
		code = input.Vanity
	} else {
		code, err = shortid.Unique(shortid.URLLength, func(candidate string) (bool, error) {
			return uc.links.CodeExists(ctx, candidate)
		})
		if err != nil {
			return nil, err
		}
	}

	link := &entity.ShortLink{
		ID:        uuid.New().String(),
		Code:      code,
		TargetURL: input.TargetURL,
		Vanity:    vanity,
		UserID:    &user.ID,
		CreatedAt: time.Now(),
	}

	err = uc.txm.Do(ctx, func(ctx context.Context) error {
		if err := uc.links.Create(ctx, link); err != nil {
			return err
		}
		event, err := audit.NewEvent(entity.AuditKindInsert, "ShortLink", link.ID, user.ID, audit.ShortLinkFields(link))
		if err != nil {
			return err
		}
		return uc.auditRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// Resolve returns the target URL for a code.
func (uc *ShortLinkUseCase) Resolve(ctx context.Context, code string) (*entity.ShortLink, error) {
	return uc.links.GetByCode(ctx, code)
}

// ResolvePublic serves the anonymous redirect hop. Disabling the
// shortener stops existing codes from resolving publicly; owners can
// still inspect and delete their links through the authenticated
// routes.
func (uc *ShortLinkUseCase) ResolvePublic(ctx context.Context, code string) (*entity.ShortLink, error) {
	if !uc.settings.GetBool(ctx, SettingShortenerEnabled, true) {
		return nil, errors.NotFound("Link", nil)
	}
	return uc.links.GetByCode(ctx, code)
}

// Delete removes a link; only its creator or an admin may.
func (uc *ShortLinkUseCase) Delete(ctx context.Context, actor *entity.User, code string) error {
	link, err := uc.links.GetByCode(ctx, code)
	if err != nil {
		return err
	}

	owned := link.UserID != nil && *link.UserID == actor.ID
	if !owned && actor.Role != "admin" {
		return errors.Forbidden("You don't have permission to delete this link", nil)
	}

	return uc.txm.Do(ctx, func(ctx context.Context) error {
		event, err := audit.NewEvent(entity.AuditKindDelete, "ShortLink", link.ID, actor.ID, audit.ShortLinkFields(link))
		if err != nil {
			return err
		}
		if err := uc.links.Delete(ctx, link.ID); err != nil {
			return err
		}
		return uc.auditRepo.Create(ctx, event)
	})
}
