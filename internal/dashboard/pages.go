package dashboard

import (
	"net/url"
	"time"

	"delitrack/internal/domain"
	"delitrack/internal/order/service"
	"delitrack/internal/telemetry"
)

// Demo values shown on every dashboard.
var demoDriver = Driver{Name: "John Delivery", Badge: "Driver #1024"}

const (
	demoETA       = "15 min"
	demoRemaining = "5.2 km remaining"
	arrivalWindow = 30 * time.Minute
)

type Driver struct {
	Name  string
	Badge string
}

type Link struct {
	Label  string
	Href   string
	Active bool
}

type MapView struct {
	StreamURL string
	Marker    telemetry.Marker
	ETA       string
	Remaining string
}

type TimelineStep struct {
	Title  string
	Detail string
	Done   bool
}

type LandingPage struct {
	Roles []Link
}

type LoginPage struct {
	Role          domain.Role
	Title         string
	Description   string
	Tabs          []Link
	Email         string
	Message       string
	EmailError    string
	PasswordError string
}

type VendorPage struct {
	Stats  domain.OrderStats
	Query  string
	Status string
	Tabs   []Link
	Orders []domain.Order
}

type DeliveryPage struct {
	Online     bool
	ToggleHref string
	Driver     Driver
	Order      domain.Order
	Progress   float64
	Map        MapView
}

type TrackPage struct {
	RequestedID      string
	Fallback         bool
	Order            domain.Order
	Progress         float64
	EstimatedArrival string
	Timeline         []TimelineStep
	Driver           Driver
	Map              MapView
}

func landingPage() LandingPage {
	return LandingPage{Roles: []Link{
		{Label: "For Vendors", Href: "/login?role=" + string(domain.RoleVendor)},
		{Label: "For Delivery Teams", Href: "/login?role=" + string(domain.RoleDelivery)},
	}}
}

func loginPage(role domain.Role) LoginPage {
	page := LoginPage{Role: role}
	switch role {
	case domain.RoleDelivery:
		page.Title = "Delivery Login"
		page.Description = "Access your delivery tasks and update status"
	case domain.RoleCustomer:
		page.Title = "Customer Login"
		page.Description = "Track your orders and manage your account"
	default:
		page.Title = "Vendor Login"
		page.Description = "Manage your orders and track deliveries"
	}

	for _, r := range domain.Roles {
		page.Tabs = append(page.Tabs, Link{
			Label:  r.Label(),
			Href:   "/login?role=" + string(r),
			Active: r == role,
		})
	}
	return page
}

var statusTabs = []struct {
	value string
	label string
}{
	{service.StatusFilterAll, "All"},
	{"pending", "Pending"},
	{"in-transit", "In Transit"},
	{"delivered", "Delivered"},
	{"cancelled", "Cancelled"},
}

// vendorTabs builds the status tab links, keeping the current search query.
func vendorTabs(query, active string) []Link {
	tabs := make([]Link, 0, len(statusTabs))
	for _, tab := range statusTabs {
		params := url.Values{}
		if query != "" {
			params.Set("q", query)
		}
		if tab.value != service.StatusFilterAll {
			params.Set("status", tab.value)
		}
		href := "/vendor"
		if encoded := params.Encode(); encoded != "" {
			href += "?" + encoded
		}
		tabs = append(tabs, Link{
			Label:  tab.label,
			Href:   href,
			Active: service.NormalizeStatusFilter(tab.value) == active,
		})
	}
	return tabs
}

func streamURL(orderID string) string {
	return "/track/" + url.PathEscape(orderID) + "/stream"
}

func mapView(orderID string, start domain.Position) MapView {
	return MapView{
		StreamURL: streamURL(orderID),
		Marker:    telemetry.MarkerOffset(start),
		ETA:       demoETA,
		Remaining: demoRemaining,
	}
}

// EstimatedArrival is now plus the fixed arrival window, as HH:MM.
func EstimatedArrival(now time.Time) string {
	return now.Add(arrivalWindow).Format("15:04")
}

func trackTimeline(o domain.Order, arrival string) []TimelineStep {
	return []TimelineStep{
		{Title: "Order Confirmed", Detail: o.Date + " at 10:25 AM", Done: true},
		{Title: "Picked Up", Detail: o.Date + " at 10:45 AM", Done: true},
		{Title: "In Transit", Detail: "Currently on the way to your location", Done: true},
		{Title: "Out for Delivery", Detail: "Estimated arrival at " + arrival},
	}
}
