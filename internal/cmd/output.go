package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/ux"
)

// messageResult is printed for calls that answer with a message and no data.
type messageResult struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// payload returns what a successful response carries. A 2xx answer that
// reports failure becomes a backend error.
func payload(resp *gateway.Response) (any, error) {
	if resp == nil {
		return nil, nil
	}
	if !resp.Success {
		return nil, errors.New(errors.ErrCodeBackendRejected, resp.FailureMessage()).WithStatus(resp.StatusCode)
	}
	if resp.HasData() {
		return resp.Data, nil
	}
	return messageResult{Success: true, Message: resp.Message}, nil
}

// show prints the outcome of a backend call.
func (a *App) show(resp *gateway.Response, err error) error {
	if err != nil {
		return err
	}
	data, err := payload(resp)
	if err != nil {
		return err
	}
	if m, ok := data.(messageResult); ok {
		return a.print(ux.WithText(m, func(w io.Writer, s ux.Styles) error {
			msg := m.Message
			if msg == "" {
				msg = "Done"
			}
			_, err := fmt.Fprintln(w, s.Success.Render("✓")+" "+msg)
			return err
		}))
	}
	return a.print(data)
}

// decodeList reads a list from data, which is either the list itself or an
// object holding it under key.
func decodeList[T any](data json.RawMessage, key string) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	if data[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, errors.Wrap(errors.ErrCodeResponseDecoding, "failed to decode response data", err)
		}
		inner, ok := obj[key]
		if !ok {
			return nil, nil
		}
		data = inner
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeResponseDecoding, "failed to decode "+key, err)
	}
	return out, nil
}

// showList prints a list response, as a table for text output.
func showList[T any](a *App, resp *gateway.Response, err error, key string, headers []string, row func(T) []string) error {
	if err != nil {
		return err
	}
	data, err := payload(resp)
	if err != nil {
		return err
	}
	raw, ok := data.(json.RawMessage)
	if !ok {
		return a.print(data)
	}

	items, err := decodeList[T](raw, key)
	if err != nil {
		return err
	}
	return a.print(ux.WithText(raw, func(w io.Writer, s ux.Styles) error {
		rows := make([][]string, len(items))
		for i, it := range items {
			rows[i] = row(it)
		}
		return ux.RenderTable(w, s, headers, rows, "No "+key+" found.")
	}))
}

func festRow(f gateway.Fest) []string {
	return []string{
		formatID(f.ID),
		ux.Truncate(f.FName, 32),
		f.StartDate,
		f.EndDate,
		place(f.City, f.State),
		f.Mode,
		f.Status,
	}
}

var festHeaders = []string{"ID", "Name", "Starts", "Ends", "Where", "Mode", "Status"}

func eventRow(e gateway.Event) []string {
	return []string{
		formatID(e.ID),
		ux.Truncate(e.EName, 32),
		e.Category,
		e.EventDate,
		formatFee(e.Fees),
		place(e.City, e.State),
		e.Mode,
		e.Status,
	}
}

var eventHeaders = []string{"ID", "Name", "Category", "Date", "Fee", "Where", "Mode", "Status"}

func formatID(id int64) string {
	if id == 0 {
		return "-"
	}
	return strconv.FormatInt(id, 10)
}

func formatFee(fee float64) string {
	if fee == 0 {
		return "Free"
	}
	return "₹" + strconv.FormatFloat(fee, 'f', -1, 64)
}

func place(city, state string) string {
	switch {
	case city == "":
		return state
	case state == "":
		return city
	default:
		return city + ", " + state
	}
}
