package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "integer", in: "3", want: "3.00"},
		{name: "one fractional digit", in: "2.5", want: "2.50"},
		{name: "two fractional digits", in: "2.50", want: "2.50"},
		{name: "trailing dot", in: "7.", want: "7.00"},
		{name: "zero", in: "0", want: "0.00"},
		{name: "largest column value", in: "99999999.99", want: "99999999.99"},
		{name: "nine integer digits", in: "123456789", wantErr: true},
		{name: "nine integer digits with cents", in: "100000000.00", wantErr: true},
		{name: "three fractional digits", in: "1.999", wantErr: true},
		{name: "negative", in: "-1.00", wantErr: true},
		{name: "letters", in: "abc", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAmount_Times(t *testing.T) {
	tests := []struct {
		price    string
		quantity int
		want     string
	}{
		{price: "2.50", quantity: 2, want: "5.00"},
		{price: "0.10", quantity: 3, want: "0.30"},
		{price: "19.99", quantity: 7, want: "139.93"},
		{price: "1", quantity: 1, want: "1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.price).Times(tt.quantity).String())
		})
	}
}

func TestAmount_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Price Amount `json:"price"`
	}{Price: MustParse("2.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"2.50"}`, string(data))

	var fromString, fromNumber Amount
	require.NoError(t, json.Unmarshal([]byte(`"4.20"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`4.2`), &fromNumber))
	assert.True(t, fromString.Equal(fromNumber.Decimal))
	assert.Equal(t, "4.20", fromNumber.String())
}

func TestAmount_UnmarshalJSONRejectsBadFormat(t *testing.T) {
	for _, in := range []string{`"1.234"`, `-5`, `"abc"`, `true`} {
		var a Amount
		err := json.Unmarshal([]byte(in), &a)
		assert.ErrorIs(t, err, ErrInvalidFormat, in)
	}
}
