package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"salespipeline/internal/models"
	"salespipeline/internal/repositories"
)

var (
	ErrWorkOrderNotFound       = errors.New("work order not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

type WorkOrderService interface {
	GetByID(ctx context.Context, id int64) (*models.WorkOrder, error)
	List(ctx context.Context, filter models.WorkOrderFilter) ([]models.WorkOrder, error)
	UpdateStatus(ctx context.Context, id int64, to models.WorkOrderStatus, lastErr *string) (*models.WorkOrder, error)
}

type workOrderService struct {
	repo repositories.WorkOrderRepository
}

func NewWorkOrderService(repo repositories.WorkOrderRepository) WorkOrderService {
	return &workOrderService{repo: repo}
}

func (s *workOrderService) GetByID(ctx context.Context, id int64) (*models.WorkOrder, error) {
	wo, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrWorkOrderNotFound, id)
	}
	return wo, err
}

func (s *workOrderService) List(ctx context.Context, filter models.WorkOrderFilter) ([]models.WorkOrder, error) {
	return s.repo.FindAll(ctx, filter)
}

// UpdateStatus moves a work order along models.WorkOrderTransitions. The
// error text is kept only for failed orders.
func (s *workOrderService) UpdateStatus(ctx context.Context, id int64, to models.WorkOrderStatus, lastErr *string) (*models.WorkOrder, error) {
	wo, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMoveWorkOrder(wo.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, wo.Status, to)
	}
	if to != models.WorkOrderFailed {
		lastErr = nil
	}
	if err := s.repo.UpdateStatus(ctx, id, to, lastErr); err != nil {
		return nil, err
	}
	log.Printf("[work-orders][status] id=%d %s -> %s", id, wo.Status, to)
	return s.repo.FindByID(ctx, id)
}
