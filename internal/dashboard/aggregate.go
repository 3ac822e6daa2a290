// Package dashboard computes the read-only derived views shown on the
// dashboard: monthly totals, recent offer/order lists and the upcoming
// task queue. Everything here is a pure function over the customer and
// task collections plus a caller-supplied clock; nothing is mutated.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
)

// RecentLimit caps the recent-offer, recent-order and upcoming-task lists.
const RecentLimit = 10

// Global tasks are tagged with this sentinel owner.
const (
	GlobalCustomerID   = "global"
	GlobalCustomerName = "General"
)

// OfferRow is an offer tagged with its owning customer.
type OfferRow struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Date         time.Time `json:"date"`
	FinalUser    string    `json:"finalUser"`
	ProjectName  string    `json:"projectName"`
	OfferName    string    `json:"offerName"`
	OCName       string    `json:"ocName"`
	Amount       float64   `json:"amount"`
	Paid         bool      `json:"paid"`
}

// OrderRow is an order tagged with its owning customer. FromOffer marks
// rows synthesized from an offer flagged as ordered; the underlying offer
// record stays where it is.
type OrderRow struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Date         time.Time `json:"date"`
	FinalUser    string    `json:"finalUser"`
	ProjectName  string    `json:"projectName"`
	OfferName    string    `json:"offerName"`
	OCName       string    `json:"ocName"`
	Amount       float64   `json:"amount"`
	Paid         bool      `json:"paid"`
	FromOffer    bool      `json:"fromOffer"`
}

// TaskRow is a task tagged with its owner; global tasks carry the
// "General" sentinel.
type TaskRow struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ExpiryDate   time.Time `json:"expiryDate"`
	Urgent       bool      `json:"urgent"`
	VeryUrgent   bool      `json:"veryUrgent"`
	Overdue      bool      `json:"overdue"`
}

// Snapshot is the aggregated dashboard view.
type Snapshot struct {
	OffersThisMonth      int        `json:"offersThisMonth"`
	OrdersThisMonth      int        `json:"ordersThisMonth"`
	OrderAmountThisMonth float64    `json:"orderAmountThisMonth"`
	LastOffers           []OfferRow `json:"lastOffers"`
	LastOrders           []OrderRow `json:"lastOrders"`
	UpcomingTasks        []TaskRow  `json:"upcomingTasks"`
}

// Aggregate builds the dashboard snapshot for the given wall-clock time.
// Customers with missing nested collections simply contribute nothing.
func Aggregate(customers []domain.Customer, globalTasks []domain.Task, now time.Time) *Snapshot {
	offers := collectOffers(customers)
	orders := collectOrders(customers)
	tasks := collectTasks(customers, globalTasks, now)

	monthStart, monthEnd := monthWindow(now)
	inMonth := func(d time.Time) bool {
		return !d.Before(monthStart) && d.Before(monthEnd)
	}

	offersThisMonth := 0
	for _, o := range offers {
		if inMonth(o.Date) {
			offersThisMonth++
		}
	}

	ordersThisMonth := 0
	orderAmount := 0.0
	for _, o := range orders {
		if inMonth(o.Date) {
			ordersThisMonth++
			orderAmount += o.Amount
		}
	}

	lastOffers := make([]OfferRow, len(offers))
	copy(lastOffers, offers)
	sort.SliceStable(lastOffers, func(i, j int) bool {
		return lastOffers[i].Date.After(lastOffers[j].Date)
	})
	if len(lastOffers) > RecentLimit {
		lastOffers = lastOffers[:RecentLimit]
	}

	lastOrders := make([]OrderRow, len(orders))
	copy(lastOrders, orders)
	sort.SliceStable(lastOrders, func(i, j int) bool {
		return lastOrders[i].Date.After(lastOrders[j].Date)
	})
	if len(lastOrders) > RecentLimit {
		lastOrders = lastOrders[:RecentLimit]
	}

	return &Snapshot{
		OffersThisMonth:      offersThisMonth,
		OrdersThisMonth:      ordersThisMonth,
		OrderAmountThisMonth: orderAmount,
		LastOffers:           lastOffers,
		LastOrders:           lastOrders,
		UpcomingTasks:        upcomingTasks(tasks),
	}
}

// monthWindow returns the half-open [start, end) window of the month
// containing t, in t's location.
func monthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// OrderSortKey selects the order-table sort column.
type OrderSortKey string

const (
	SortByDate     OrderSortKey = "date"
	SortByAmount   OrderSortKey = "amount"
	SortByCustomer OrderSortKey = "customer"
)

// SortDirection selects ascending or descending order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PaidFilter narrows the order table by payment status.
type PaidFilter string

const (
	PaidAll    PaidFilter = "all"
	PaidOnly   PaidFilter = "paid"
	UnpaidOnly PaidFilter = "unpaid"
)

// OrderTable is the filtered, sorted order view. TotalAmount is summed
// over the whole filtered set, not a truncation of it.
type OrderTable struct {
	Orders      []OrderRow `json:"orders"`
	TotalAmount float64    `json:"totalAmount"`
}

// Orders builds the sortable order table. The payment filter is applied
// before sorting; ties keep input order.
func Orders(customers []domain.Customer, sortBy OrderSortKey, direction SortDirection, filter PaidFilter) *OrderTable {
	all := collectOrders(customers)

	filtered := make([]OrderRow, 0, len(all))
	total := 0.0
	for _, o := range all {
		switch filter {
		case PaidOnly:
			if !o.Paid {
				continue
			}
		case UnpaidOnly:
			if o.Paid {
				continue
			}
		}
		filtered = append(filtered, o)
		total += o.Amount
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		cmp := compareOrders(filtered[i], filtered[j], sortBy)
		if direction == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})

	return &OrderTable{Orders: filtered, TotalAmount: total}
}

func compareOrders(a, b OrderRow, key OrderSortKey) int {
	switch key {
	case SortByAmount:
		switch {
		case a.Amount < b.Amount:
			return -1
		case a.Amount > b.Amount:
			return 1
		}
		return 0
	case SortByCustomer:
		return strings.Compare(a.CustomerName, b.CustomerName)
	default:
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	}
}

// collectOffers gathers the active (not yet ordered) offers of every
// customer.
func collectOffers(customers []domain.Customer) []OfferRow {
	var rows []OfferRow
	for _, c := range customers {
		for _, o := range c.Offers {
			if o.MarkedAsOrdered {
				continue
			}
			rows = append(rows, OfferRow{
				ID:           o.ID,
				CustomerID:   c.ID,
				CustomerName: c.Name,
				Date:         o.Date,
				FinalUser:    o.FinalUser,
				ProjectName:  o.ProjectName,
				OfferName:    o.OfferName,
				OCName:       o.OCName,
				Amount:       o.Amount,
				Paid:         o.Paid,
			})
		}
	}
	return rows
}

// collectOrders merges real orders with orders synthesized from offers
// flagged as ordered. A synthesized row inherits the offer's own paid
// flag.
func collectOrders(customers []domain.Customer) []OrderRow {
	var rows []OrderRow
	for _, c := range customers {
		for _, o := range c.Orders {
			rows = append(rows, OrderRow{
				ID:           o.ID,
				CustomerID:   c.ID,
				CustomerName: c.Name,
				Date:         o.Date,
				FinalUser:    o.FinalUser,
				ProjectName:  o.ProjectName,
				OfferName:    o.OfferName,
				OCName:       o.OCName,
				Amount:       o.Amount,
				Paid:         o.Paid,
			})
		}
		for _, o := range c.Offers {
			if !o.MarkedAsOrdered {
				continue
			}
			rows = append(rows, OrderRow{
				ID:           o.ID,
				CustomerID:   c.ID,
				CustomerName: c.Name,
				Date:         o.Date,
				FinalUser:    o.FinalUser,
				ProjectName:  o.ProjectName,
				OfferName:    o.OfferName,
				OCName:       o.OCName,
				Amount:       o.Amount,
				Paid:         o.Paid,
				FromOffer:    true,
			})
		}
	}
	return rows
}

// collectTasks merges global tasks with every customer's tasks,
// dropping completed ones.
func collectTasks(customers []domain.Customer, globalTasks []domain.Task, now time.Time) []TaskRow {
	var rows []TaskRow
	for _, t := range globalTasks {
		if t.Completed {
			continue
		}
		rows = append(rows, taskRow(t, GlobalCustomerID, GlobalCustomerName, now))
	}
	for _, c := range customers {
		for _, t := range c.Tasks {
			if t.Completed {
				continue
			}
			rows = append(rows, taskRow(t, c.ID, c.Name, now))
		}
	}
	return rows
}

func taskRow(t domain.Task, customerID, customerName string, now time.Time) TaskRow {
	return TaskRow{
		ID:           t.ID,
		CustomerID:   customerID,
		CustomerName: customerName,
		Title:        t.Title,
		Description:  t.Description,
		ExpiryDate:   t.ExpiryDate,
		Urgent:       t.Urgent,
		VeryUrgent:   t.VeryUrgent,
		Overdue:      now.After(t.ExpiryDate),
	}
}

// upcomingTasks keeps incomplete tasks and orders them by priority:
// very urgent first, then urgent, then earliest expiry. The overdue flag
// plays no part in the ordering.
func upcomingTasks(tasks []TaskRow) []TaskRow {
	pending := make([]TaskRow, len(tasks))
	copy(pending, tasks)

	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		if a.VeryUrgent != b.VeryUrgent {
			return a.VeryUrgent
		}
		if a.Urgent != b.Urgent {
			return a.Urgent
		}
		return a.ExpiryDate.Before(b.ExpiryDate)
	})

	if len(pending) > RecentLimit {
		pending = pending[:RecentLimit]
	}
	return pending
}
