package dto

import "time"

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// OrderNowRequest places an order for the authenticated user.
type OrderNowRequest struct {
	Address string             `json:"address" validate:"required,max=512"`
	City    string             `json:"city" validate:"required,max=255"`
	Items   []OrderItemRequest `json:"items" validate:"required"`
}

// ChangeStatusRequest moves an order to a new status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,in=Pending,Processing,Shipped,Delivered,Cancelled"`
}

// OrderSearchRequest filters the order listing. Zero values mean "no
// constraint"; every supplied criterion narrows the result. The date range
// only applies when both ends are present; combining it with months is
// allowed and simply intersects the two windows.
type OrderSearchRequest struct {
	UserID    uint       `json:"user_id"`
	Status    string     `json:"status" validate:"nullable,in=Pending,Processing,Shipped,Delivered,Cancelled"`
	City      string     `json:"city"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Months    int        `json:"months" validate:"nullable,gte=1,lte=120"`
	Page      int        `json:"page"`
	PerPage   int        `json:"per_page"`
}
