package message_test

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httpmsg/message"
	"github.com/ghettovoice/httpmsg/stream"
)

func TestNewResponse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code       int
		wantReason string
		wantErr    error
	}{
		{200, "OK", nil},
		{404, "Not Found", nil},
		{100, "Continue", nil},
		{599, "", nil},
		{99, "", message.ErrInvalidStatus},
		{600, "", message.ErrInvalidStatus},
		{-200, "", message.ErrInvalidStatus},
	}

	for _, c := range cases {
		t.Run(strconv.Itoa(c.code), func(t *testing.T) {
			t.Parallel()

			res, err := message.NewResponse(c.code)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("message.NewResponse(%d) error = %v, want %v\ndiff (-got +want):\n%v", c.code, err, c.wantErr, diff)
			}
			if err != nil {
				return
			}
			if res.StatusCode() != c.code {
				t.Errorf("res.StatusCode() = %d, want %d", res.StatusCode(), c.code)
			}
			if res.ReasonPhrase() != c.wantReason {
				t.Errorf("res.ReasonPhrase() = %q, want %q", res.ReasonPhrase(), c.wantReason)
			}
		})
	}
}

func TestResponse_WithStatus(t *testing.T) {
	t.Parallel()

	orig := new(message.Response)
	if orig.StatusCode() != 200 || orig.ReasonPhrase() != "OK" {
		t.Errorf("zero response = %q, want 200 OK", orig)
	}

	res, err := orig.WithStatus(418, "Short And Stout")
	if err != nil {
		t.Fatalf("orig.WithStatus() error = %v, want nil", err)
	}
	if res.StatusCode() != 418 || res.ReasonPhrase() != "Short And Stout" {
		t.Errorf("res = %q, want 418 Short And Stout", res)
	}
	if orig.StatusCode() != 200 {
		t.Errorf("orig.StatusCode() = %d after derivation, want 200", orig.StatusCode())
	}

	res2, _ := res.WithStatus(503, "")
	if res2.ReasonPhrase() != "Service Unavailable" {
		t.Errorf("res2.ReasonPhrase() = %q, want standard text", res2.ReasonPhrase())
	}

	if _, err := res.WithStatus(700, ""); !cmp.Equal(err, message.ErrInvalidStatus, cmpopts.EquateErrors()) {
		t.Errorf("res.WithStatus(700) error = %v, want %v", err, message.ErrInvalidStatus)
	}
	if _, err := res.WithStatus(200, "OK\r\nX: y"); !cmp.Equal(err, message.ErrInvalidStatus, cmpopts.EquateErrors()) {
		t.Errorf("res.WithStatus(200, CRLF) error = %v, want %v", err, message.ErrInvalidStatus)
	}
}

func TestResponse_Render(t *testing.T) {
	t.Parallel()

	res, _ := message.NewResponse(201)
	res, _ = res.WithProtocolVersion("1.0")
	res, _ = res.WithHeader("Location", "/items/1")

	want := "HTTP/1.0 201 Created\r\nLocation: /items/1\r\n\r\n"
	if got := res.Render(nil); got != want {
		t.Errorf("res.Render(nil) = %q, want %q", got, want)
	}
	if got := res.String(); got != "HTTP/1.0 201 Created" {
		t.Errorf("res.String() = %q, want \"HTTP/1.0 201 Created\"", got)
	}
	if err := res.Validate(); err != nil {
		t.Errorf("res.Validate() error = %v, want nil", err)
	}

	clone := res.Clone()
	clone2, _ := clone.WithoutHeader("location")
	if ok, _ := res.HasHeader("Location"); !ok {
		t.Errorf("res.HasHeader(\"Location\") = false after derivation from clone, want true")
	}
	if ok, _ := clone2.HasHeader("Location"); ok {
		t.Errorf("clone2.HasHeader(\"Location\") = true, want false")
	}
}

func TestResponse_WithBody(t *testing.T) {
	t.Parallel()

	orig, _ := message.NewResponse(404)
	body := stream.FromString("not found")

	res := orig.WithBody(body)
	if res.Body() != body {
		t.Errorf("res.Body() = %v, want the given stream", res.Body())
	}
	if res.StatusCode() != 404 {
		t.Errorf("res.StatusCode() = %d, want 404", res.StatusCode())
	}
	if orig.Body() != nil {
		t.Errorf("orig.Body() = %v, want nil", orig.Body())
	}
}
