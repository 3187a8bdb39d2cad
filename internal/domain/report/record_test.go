package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecords_Defaults(t *testing.T) {
	data := []byte(`[
		{"parent": null, "category": "", "name": "Краска", "remind_end_sum": 12.5},
		{}
	]`)

	recs, err := DecodeRecords(data)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	r := recs[0]
	assert.Equal(t, UnknownGroup, r.Parent)
	assert.Equal(t, UnknownGroup, r.Category)
	assert.Equal(t, "Краска", r.Name)
	assert.Equal(t, DefaultUnit, r.Unit)
	assert.Equal(t, DefaultCode, r.Code)
	assert.Nil(t, r.Color)
	assert.True(t, r.LastPrice.IsZero())
	assert.True(t, r.EndSum.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, r.StartAmount.IsZero())

	empty := recs[1]
	assert.Equal(t, UnknownGroup, empty.Parent)
	assert.True(t, TotalsOf(empty).Equal(Totals{}))
}

func TestDecodeRecords_AllFields(t *testing.T) {
	data := []byte(`[{
		"parent": "Краски", "category": "Estel", "name": "Estel 7/1",
		"unit": "g", "code": "E-71", "color": "#aa0000", "last_price": "15,75",
		"remind_start_amount": 1, "remind_start_sum": 2,
		"remind_income_amount": 3, "remind_income_sum": 4,
		"remind_outgo_amount": 5, "remind_outgo_sum": 6,
		"remind_end_amount": null, "remind_end_sum": "8"
	}]`)

	recs, err := DecodeRecords(data)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	r := recs[0]

	assert.Equal(t, "Краски", r.Parent)
	assert.Equal(t, "Estel", r.Category)
	assert.Equal(t, "g", r.Unit)
	assert.Equal(t, "E-71", r.Code)
	require.NotNil(t, r.Color)
	assert.Equal(t, "#aa0000", *r.Color)
	assert.True(t, r.LastPrice.Equal(decimal.RequireFromString("15.75")))

	want := []int64{1, 2, 3, 4, 5, 6, 0, 8}
	for i, f := range TotalsOf(r).Fields() {
		assert.True(t, f.Equal(decimal.NewFromInt(want[i])), "field %d = %s", i, f)
	}
}

func TestDecodeRecords_GarbageFieldsDoNotFail(t *testing.T) {
	data := []byte(`[{"parent": "A", "remind_end_sum": "n/a", "remind_start_sum": true}, 42]`)

	recs, err := DecodeRecords(data)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "A", recs[0].Parent)
	assert.True(t, recs[0].EndSum.IsZero())
	assert.True(t, recs[0].StartSum.IsZero())
	assert.Equal(t, UnknownGroup, recs[1].Parent)
}

func TestDecodeRecords_WrongTypedStringFieldsKeepRecord(t *testing.T) {
	data := []byte(`[
		{"parent": "A", "category": "X", "code": 12345, "remind_end_sum": 100},
		{"parent": "A", "category": "X", "name": 7, "unit": true, "color": {"hex": "#fff"}, "remind_end_sum": 50},
		{"parent": ["A"], "category": false, "remind_end_sum": 1}
	]`)

	recs, err := DecodeRecords(data)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "A", recs[0].Parent)
	assert.Equal(t, "X", recs[0].Category)
	assert.Equal(t, "12345", recs[0].Code)

	assert.Equal(t, "7", recs[1].Name)
	assert.Equal(t, DefaultUnit, recs[1].Unit)
	assert.Nil(t, recs[1].Color)

	assert.Equal(t, UnknownGroup, recs[2].Parent)
	assert.Equal(t, UnknownGroup, recs[2].Category)

	tree := Aggregate(recs)
	require.Len(t, tree.Parents, 2)
	assert.Equal(t, "A", tree.Parents[0].Name)
	assert.True(t, tree.Parents[0].Totals.EndSum.Equal(decimal.NewFromInt(150)))
	assert.True(t, tree.Grand.EndSum.Equal(decimal.NewFromInt(151)))
}

func TestDecodeRecords_NotAnArray(t *testing.T) {
	_, err := DecodeRecords([]byte(`{"message": "oops"}`))
	assert.Error(t, err)
}
