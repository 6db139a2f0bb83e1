package client

import (
	"context"
	"net/url"

	"flipfit/pkg/model"
)

// FlipFitClient is a thin typed client over the bookings API.
type FlipFitClient struct {
	httpClient *HttpClient
}

func NewFlipFitClient(baseURL string) *FlipFitClient {
	return &FlipFitClient{httpClient: NewHttpClient(baseURL)}
}

func (c *FlipFitClient) HTTP() *HttpClient {
	return c.httpClient
}

func (c *FlipFitClient) CreateGym(ctx context.Context, gym *model.GymCenter) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/gyms", gym)
}

func (c *FlipFitClient) CreateSlot(ctx context.Context, gymID string, slot any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/gyms/"+url.PathEscape(gymID)+"/slots", slot)
}

func (c *FlipFitClient) Book(ctx context.Context, req model.BookingRequest) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings", req)
}

func (c *FlipFitClient) Cancel(ctx context.Context, bookingID string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/bookings/id/"+url.PathEscape(bookingID))
}

func (c *FlipFitClient) GetBooking(ctx context.Context, bookingID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/bookings/id/"+url.PathEscape(bookingID))
}

func (c *FlipFitClient) JoinWaitlist(ctx context.Context, req model.BookingRequest) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/waitlist", req)
}

func (c *FlipFitClient) CustomerBookings(ctx context.Context, customerID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/customers/"+url.PathEscape(customerID)+"/bookings")
}

func (c *FlipFitClient) GymSlots(ctx context.Context, gymID, date string) (*Response, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	return c.httpClient.GET(ctx, "/api/v1/gyms/"+url.PathEscape(gymID)+"/slots?"+q.Encode())
}

func (c *FlipFitClient) Notifications(ctx context.Context, customerID string, unreadOnly bool) (*Response, error) {
	path := "/api/v1/customers/" + url.PathEscape(customerID) + "/notifications"
	if unreadOnly {
		path += "?unread=true"
	}
	return c.httpClient.GET(ctx, path)
}
