package service

import (
	"context"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
)

// ==================== RatingService 评分服务 ====================

// RatingService 评分台账：一个 (user, store) 至多一条记录，
// 每次增删改都在同一事务里让 store.avg_rating 跟上评分集
type RatingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
}

// NewRatingService 创建评分服务
func NewRatingService(ratingRepo repository.RatingRepository, storeRepo repository.StoreRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
	}
}

// Submit 提交评分（新建或覆盖）
// authorID 来自认证上下文；店铺不存在直接 404，不产生任何写入
func (s *RatingService) Submit(ctx context.Context, authorID string, req *dto.SubmitRatingRequest) (*dto.SubmitRatingResponse, bool, error) {
	if errs := validateRating(req); len(errs) > 0 {
		return nil, false, &ValidationError{Errors: errs}
	}

	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, false, err
	}
	if store == nil {
		return nil, false, ErrStoreNotFound
	}

	// 空评论显式置 NULL，覆盖时不保留旧评论
	comment := req.Comment
	if comment != nil && *comment == "" {
		comment = nil
	}

	rating := &model.Rating{
		UserID:  authorID,
		StoreID: req.StoreID,
		Rating:  req.Rating,
		Comment: comment,
	}

	saved, created, err := s.ratingRepo.Upsert(ctx, rating)
	if err != nil {
		return nil, false, err
	}

	return &dto.SubmitRatingResponse{
		Rating:  dto.NewRatingInfo(saved),
		Comment: comment,
	}, created, nil
}

// Delete 删除评分，作者本人或管理员
func (s *RatingService) Delete(ctx context.Context, actorID string, actorRole model.Role, id string) error {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rating == nil {
		return ErrRatingNotFound
	}

	if actorRole != model.RoleSystemAdmin && rating.UserID != actorID {
		return ErrRatingDelete
	}

	return s.ratingRepo.Delete(ctx, rating)
}

// ListByStore 某店铺收到的评分
func (s *RatingService) ListByStore(ctx context.Context, storeID string, page repository.Page) (*dto.RatingListResponse, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	ratings, total, err := s.ratingRepo.ListByStore(ctx, storeID, page)
	if err != nil {
		return nil, err
	}

	return &dto.RatingListResponse{
		Store:   &dto.StoreBrief{ID: store.ID, Name: store.Name},
		Ratings: dto.NewRatingInfos(ratings),
		Pagination: dto.Pagination{
			Page:  page.PageNum,
			Limit: page.Limit(),
			Total: total,
			Pages: page.Pages(total),
		},
	}, nil
}

// ListByUser 某用户提交过的评分，本人或管理员可见
func (s *RatingService) ListByUser(ctx context.Context, actorID string, actorRole model.Role, userID string, page repository.Page) (*dto.RatingListResponse, error) {
	if actorRole != model.RoleSystemAdmin && actorID != userID {
		return nil, ErrRatingsAccess
	}

	ratings, total, err := s.ratingRepo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	return &dto.RatingListResponse{
		Ratings: dto.NewRatingInfos(ratings),
		Pagination: dto.Pagination{
			Page:  page.PageNum,
			Limit: page.Limit(),
			Total: total,
			Pages: page.Pages(total),
		},
	}, nil
}

// validateRating 持久化前的参数校验，binding 之外再兜一层
func validateRating(req *dto.SubmitRatingRequest) []dto.FieldError {
	var errs []dto.FieldError
	if req.Rating < 1 {
		errs = append(errs, dto.FieldError{Field: "rating", Message: "Rating must be at least 1"})
	}
	if req.Rating > 5 {
		errs = append(errs, dto.FieldError{Field: "rating", Message: "Rating must not exceed 5"})
	}
	if req.Comment != nil && len([]rune(*req.Comment)) > 500 {
		errs = append(errs, dto.FieldError{Field: "comment", Message: "Comment must not exceed 500 characters"})
	}
	if req.StoreID == "" {
		errs = append(errs, dto.FieldError{Field: "storeId", Message: "Store ID is required"})
	}
	return errs
}

// SubmitMessage created/updated 对应的响应文案
func SubmitMessage(created bool) string {
	if created {
		return "Rating created successfully"
	}
	return "Rating updated successfully"
}
