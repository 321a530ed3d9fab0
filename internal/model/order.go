package model

import (
	"time"

	"gorm.io/gorm"
)

// Order Status workflow
type OrderStatus string

const (
	OrderNew        OrderStatus = "novo"
	OrderConfirmed  OrderStatus = "confirmado"
	OrderInProgress OrderStatus = "producao"
	OrderReady      OrderStatus = "pronto"
	OrderDelivered  OrderStatus = "entregue"
	OrderCanceled   OrderStatus = "cancelado"
)

// Order Channels
type OrderChannel string

const (
	ChannelWhatsApp  OrderChannel = "whatsapp"
	ChannelInstagram OrderChannel = "instagram"
	ChannelInPerson  OrderChannel = "presencial"
)

// allowedStatusFlow is the forward-only workflow. Delivered and
// canceled orders are terminal.
var allowedStatusFlow = map[OrderStatus][]OrderStatus{
	OrderNew:        {OrderConfirmed, OrderCanceled},
	OrderConfirmed:  {OrderInProgress, OrderCanceled},
	OrderInProgress: {OrderReady, OrderCanceled},
	OrderReady:      {OrderDelivered, OrderCanceled},
	OrderDelivered:  {},
	OrderCanceled:   {},
}

func ValidOrderStatus(s OrderStatus) bool {
	_, ok := allowedStatusFlow[s]
	return ok
}

func CanTransition(from, to OrderStatus) bool {
	for _, next := range allowedStatusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	gorm.Model
	ConfectionerID uint   `json:"confectioner_id" gorm:"index;not null"`
	CustomerName   string `json:"customer_name" gorm:"not null"`
	CustomerPhone  string `json:"customer_phone"`

	Status  string `json:"status" gorm:"type:varchar(16);default:'novo';not null"`
	Channel string `json:"channel" gorm:"type:varchar(16)"`

	DeliveryDate *time.Time `json:"delivery_date"`
	Notes        string     `json:"notes" gorm:"type:text"`
	TotalAmount  float64    `json:"total_amount"`

	Items []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID     uint    `json:"order_id" gorm:"index;not null"`
	ProductID   *uint   `json:"product_id"`
	ProductName string  `json:"product_name" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	UnitPrice   float64 `json:"unit_price" gorm:"not null"`
	Subtotal    float64 `json:"subtotal"`
}

func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	i.Subtotal = float64(i.Quantity) * i.UnitPrice
	return nil
}
