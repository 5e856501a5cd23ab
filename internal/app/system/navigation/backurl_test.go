package navigation

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestSafeBackURL(t *testing.T) {
	tests := []struct {
		name   string
		target string
		form   url.Values
		opts   BackURLOptions
		want   string
	}{
		{
			name:   "query return inside prefix",
			target: "/dashboard/events/9/delete?return=/dashboard/calendar",
			opts:   EventsBackURL("9"),
			want:   "/dashboard/calendar",
		},
		{
			name:   "form return used when query empty",
			target: "/dashboard/events/9/delete",
			form:   url.Values{"return": {"/dashboard/events?page=2"}},
			opts:   EventsBackURL("9"),
			want:   "/dashboard/events?page=2",
		},
		{
			name:   "removed event page rejected",
			target: "/dashboard/events/9/delete?return=/dashboard/events/9",
			opts:   EventsBackURL("9"),
			want:   "/dashboard/events",
		},
		{
			name:   "action page rejected",
			target: "/x?return=/dashboard/events/3/edit",
			opts:   EventsBackURL(""),
			want:   "/dashboard/events",
		},
		{
			name:   "external url rejected",
			target: "/x?return=https://evil.example/",
			opts:   EventsBackURL(""),
			want:   "/dashboard/events",
		},
		{
			name:   "outside prefix rejected, type preserved",
			target: "/x?return=/login&type=t1",
			opts:   EventsBackURL(""),
			want:   "/dashboard/events?type=t1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := "GET"
			body := ""
			if tt.form != nil {
				method = "POST"
				body = tt.form.Encode()
			}
			r := httptest.NewRequest(method, tt.target, strings.NewReader(body))
			if tt.form != nil {
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			if got := SafeBackURL(r, tt.opts); got != tt.want {
				t.Errorf("SafeBackURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
