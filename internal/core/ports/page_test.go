package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{"zero value", PageRequest{}, PageRequest{Page: 1, Limit: DefaultPageLimit}},
		{"negative", PageRequest{Page: -3, Limit: -1}, PageRequest{Page: 1, Limit: DefaultPageLimit}},
		{"limit capped", PageRequest{Page: 2, Limit: 500}, PageRequest{Page: 2, Limit: MaxPageLimit}},
		{"huge page", PageRequest{Page: 922337203685477581, Limit: 100}, PageRequest{Page: MaxPage, Limit: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageRequest_SkipNeverNegative(t *testing.T) {
	p := PageRequest{Page: 922337203685477581, Limit: 100}.Normalize()
	assert.Equal(t, int64(MaxPage-1)*100, p.Skip())
	assert.Positive(t, p.Skip())

	assert.Equal(t, int64(0), PageRequest{Page: 1, Limit: 20}.Skip())
	assert.Equal(t, int64(40), PageRequest{Page: 3, Limit: 20}.Skip())
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, 41, PageRequest{Page: 1, Limit: 20})
	assert.Equal(t, []int{}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(41), p.Total)
}
