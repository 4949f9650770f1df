package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sheetcast/pkg/domain/model"
)

func TestGridRecords(t *testing.T) {
	t.Run("empty grid", func(t *testing.T) {
		gt.Array(t, model.Grid{}.Records()).Length(0)
	})

	t.Run("header only", func(t *testing.T) {
		grid := model.Grid{{"name", "age"}}
		gt.Array(t, grid.Records()).Length(0)
	})

	t.Run("one record per data row", func(t *testing.T) {
		grid := model.Grid{
			{"name", "age"},
			{"alice", "30"},
			{"bob", "41"},
		}
		records := grid.Records()
		gt.Array(t, records).Length(2)
		gt.Value(t, records[0]).Equal(model.Record{"name": "alice", "age": "30"})
		gt.Value(t, records[1]).Equal(model.Record{"name": "bob", "age": "41"})
	})

	t.Run("ragged rows are padded and extra cells dropped", func(t *testing.T) {
		grid := model.Grid{
			{"a", "b", "c"},
			{"1"},
			{"1", "2", "3", "4"},
			{},
		}
		records := grid.Records()
		gt.Array(t, records).Length(3)
		gt.Value(t, records[0]).Equal(model.Record{"a": "1", "b": "", "c": ""})
		gt.Value(t, records[1]).Equal(model.Record{"a": "1", "b": "2", "c": "3"})
		gt.Value(t, records[2]).Equal(model.Record{"a": "", "b": "", "c": ""})
	})

	t.Run("duplicate headers keep the last column", func(t *testing.T) {
		grid := model.Grid{
			{"id", "id", "x"},
			{"first", "second", "y"},
		}
		records := grid.Records()
		gt.Array(t, records).Length(1)
		gt.Value(t, records[0]).Equal(model.Record{"id": "second", "x": "y"})
	})

	t.Run("row order is preserved", func(t *testing.T) {
		grid := model.Grid{{"n"}, {"3"}, {"1"}, {"2"}}
		records := grid.Records()
		gt.Value(t, records[0]["n"]).Equal("3")
		gt.Value(t, records[1]["n"]).Equal("1")
		gt.Value(t, records[2]["n"]).Equal("2")
	})
}

func TestGridFilterNonEmpty(t *testing.T) {
	t.Run("empty grid", func(t *testing.T) {
		gt.Array(t, model.Grid{}.FilterNonEmpty()).Length(0)
	})

	t.Run("header row is always kept", func(t *testing.T) {
		grid := model.Grid{{"", " "}, {"", ""}, {"  "}}
		filtered := grid.FilterNonEmpty()
		gt.Array(t, filtered).Length(1)
		gt.Value(t, filtered[0]).Equal([]string{"", " "})
	})

	t.Run("blank rows are dropped", func(t *testing.T) {
		grid := model.Grid{
			{"name", "age"},
			{"alice", "30"},
			{"", ""},
			{},
			{" ", "\t"},
			{"", "9"},
		}
		filtered := grid.FilterNonEmpty()
		gt.Value(t, filtered).Equal(model.Grid{
			{"name", "age"},
			{"alice", "30"},
			{"", "9"},
		})
	})
}

func TestGridShape(t *testing.T) {
	grid := model.Grid{{"a", "b"}, {"1", "2", "3"}, {"x"}}
	gt.Value(t, grid.Width()).Equal(3)
	gt.Value(t, grid.Headers()).Equal([]string{"a", "b"})
	gt.Array(t, grid.DataRows()).Length(2)

	gt.Value(t, model.Grid{}.Width()).Equal(0)
	gt.Array(t, model.Grid{}.Headers()).Length(0)
	gt.Array(t, model.Grid{{"a"}}.DataRows()).Length(0)
}

func TestNonEmptyRecords(t *testing.T) {
	records := []model.Record{
		{"a": "", "b": " "},
		{"a": "1", "b": ""},
	}
	filtered := model.NonEmptyRecords(records)
	gt.Array(t, filtered).Length(1)
	gt.Value(t, filtered[0]["a"]).Equal("1")
}
