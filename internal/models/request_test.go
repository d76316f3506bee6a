package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "plain date",
			input: "2026-01-05",
			want:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339",
			input: "2026-01-05T09:30:00Z",
			want:  time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			input: "2026-01-05T01:00:00+02:00",
			want:  time.Date(2026, 1, 4, 23, 0, 0, 0, time.UTC),
		},
		{
			name:    "us format rejected",
			input:   "01/05/2026",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "expected %v, got %v", tt.want, got)
		})
	}
}

func TestSalesPoint_Validate(t *testing.T) {
	tests := []struct {
		name    string
		point   SalesPoint
		wantErr bool
	}{
		{
			name:  "valid",
			point: SalesPoint{Date: "2026-01-05", Sales: 12.5},
		},
		{
			name:  "zero sales",
			point: SalesPoint{Date: "2026-01-05", Sales: 0},
		},
		{
			name:    "bad date",
			point:   SalesPoint{Date: "not-a-date", Sales: 1},
			wantErr: true,
		},
		{
			name:    "negative sales",
			point:   SalesPoint{Date: "2026-01-05", Sales: -3},
			wantErr: true,
		},
		{
			name:    "nan sales",
			point:   SalesPoint{Date: "2026-01-05", Sales: math.NaN()},
			wantErr: true,
		},
		{
			name:    "infinite sales",
			point:   SalesPoint{Date: "2026-01-05", Sales: math.Inf(1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.point.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSalesWriteRequest_Normalize(t *testing.T) {
	sales := 12.5

	t.Run("single observation", func(t *testing.T) {
		req := SalesWriteRequest{Date: "2026-01-05", Sales: &sales}
		points, err := req.Normalize()
		assert.NoError(t, err)
		assert.Len(t, points, 1)
		assert.Equal(t, "2026-01-05", points[0].Date)
		assert.Equal(t, 12.5, points[0].Sales)
	})

	t.Run("batch", func(t *testing.T) {
		req := SalesWriteRequest{Points: []SalesPoint{
			{Date: "2026-01-05", Sales: 12.5},
			{Date: "2026-01-06", Sales: 8},
		}}
		points, err := req.Normalize()
		assert.NoError(t, err)
		assert.Len(t, points, 2)
	})

	t.Run("single plus batch", func(t *testing.T) {
		req := SalesWriteRequest{
			Date:   "2026-01-04",
			Sales:  &sales,
			Points: []SalesPoint{{Date: "2026-01-05", Sales: 8}},
		}
		points, err := req.Normalize()
		assert.NoError(t, err)
		assert.Len(t, points, 2)
		assert.Equal(t, "2026-01-04", points[0].Date)
	})

	t.Run("date without sales", func(t *testing.T) {
		req := SalesWriteRequest{Date: "2026-01-05"}
		_, err := req.Normalize()
		assert.Error(t, err)
	})

	t.Run("empty request", func(t *testing.T) {
		req := SalesWriteRequest{}
		_, err := req.Normalize()
		assert.Error(t, err)
	})

	t.Run("invalid point in batch", func(t *testing.T) {
		req := SalesWriteRequest{Points: []SalesPoint{
			{Date: "2026-01-05", Sales: 12.5},
			{Date: "2026-01-06", Sales: -1},
		}}
		_, err := req.Normalize()
		assert.Error(t, err)
	})
}
