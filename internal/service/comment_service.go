package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "pharmadir/internal/errors"
	"pharmadir/internal/model"
	"pharmadir/internal/repository"
)

// CommentService manages the comments left on a pharmacy.
type CommentService interface {
	CreateComment(ctx context.Context, input model.CreateCommentInput, authHeader string) (*model.CreateCommentResponse, error)
	GetComments(ctx context.Context, pharmacyID string) ([]model.Comment, error)
	DeleteComment(ctx context.Context, pharmacyID, commentID, authHeader string) (*model.MessageResponse, error)
}

type commentService struct {
	auth       AuthService
	pharmacies repository.PharmacyRepository
	comments   repository.CommentRepository
	log        *zap.Logger
	now        func() time.Time
}

// NewCommentService creates a new comment service.
func NewCommentService(
	auth AuthService,
	pharmacies repository.PharmacyRepository,
	comments repository.CommentRepository,
	log *zap.Logger,
) CommentService {
	return &commentService{
		auth:       auth,
		pharmacies: pharmacies,
		comments:   comments,
		log:        log,
		now:        time.Now,
	}
}

func (s *commentService) ensurePharmacy(ctx context.Context, pharmacyID string) error {
	if _, err := s.pharmacies.FindByID(ctx, pharmacyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Pharmacy Not Found")
		}
		s.log.Error("load pharmacy failed", zap.String("pharmacy_id", pharmacyID), zap.Error(err))
		return apperrors.Wrap(err, "Failed to fetch pharmacy")
	}
	return nil
}

func (s *commentService) CreateComment(ctx context.Context, input model.CreateCommentInput, authHeader string) (*model.CreateCommentResponse, error) {
	user, err := s.auth.ResolveUser(ctx, authHeader)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePharmacy(ctx, input.PharmacyID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		UserID:    user.UID,
		Comment:   input.Comment,
		Stars:     input.Stars,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.comments.Add(ctx, input.PharmacyID, comment)
	if err != nil {
		s.log.Error("add comment failed", zap.String("pharmacy_id", input.PharmacyID), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to add comment")
	}

	return &model.CreateCommentResponse{
		Message:   "Comment added successfully",
		CommentID: id,
	}, nil
}

// GetComments lists a pharmacy's comments. The pharmacy must exist.
func (s *commentService) GetComments(ctx context.Context, pharmacyID string) ([]model.Comment, error) {
	if err := s.ensurePharmacy(ctx, pharmacyID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPharmacy(ctx, pharmacyID)
	if err != nil {
		s.log.Error("list comments failed", zap.String("pharmacy_id", pharmacyID), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to fetch comments")
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

// DeleteComment removes a comment owned by the caller.
func (s *commentService) DeleteComment(ctx context.Context, pharmacyID, commentID, authHeader string) (*model.MessageResponse, error) {
	user, err := s.auth.ResolveUser(ctx, authHeader)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePharmacy(ctx, pharmacyID); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByID(ctx, pharmacyID, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Comment Not Found")
		}
		return nil, apperrors.Wrap(err, "Failed to fetch comment")
	}

	if comment.UserID != user.UID {
		return nil, apperrors.Forbidden("You are not allowed to delete this comment")
	}

	if err := s.comments.Delete(ctx, pharmacyID, commentID); err != nil {
		s.log.Error("delete comment failed", zap.String("comment_id", commentID), zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to delete comment")
	}

	return &model.MessageResponse{Message: "Comment deleted successfully"}, nil
}
