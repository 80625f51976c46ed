package domain

import "time"

// OrderDateLayout is ISO-8601 in UTC with millisecond precision.
const OrderDateLayout = "2006-01-02T15:04:05.000Z07:00"

type OrderItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type Order struct {
	CustomerName string      `json:"customerName"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Items        []OrderItem `json:"items"`
	Total        int64       `json:"total"`
	OrderDate    string      `json:"orderDate"`
}

func NewOrder(customerName, email, phone, address string, snapshot Snapshot, placedAt time.Time) Order {
	items := make([]OrderItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, OrderItem{Name: item.Name, Price: item.Price})
	}

	return Order{
		CustomerName: customerName,
		Email:        email,
		Phone:        phone,
		Address:      address,
		Items:        items,
		Total:        snapshot.Total(),
		OrderDate:    placedAt.UTC().Format(OrderDateLayout),
	}
}
