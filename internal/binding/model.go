package binding

// ModelSource provides the rows of a ListModel. Only the display role is
// modelled, so a row is a single value.
type ModelSource interface {
	RowCount() int
	Data(row int) any
}

// ListModel is embedded instead of Base to expose list data to the view.
type ListModel struct {
	Base
	source ModelSource
}

// InitModel initializes the embedded Base and binds the row source,
// usually the embedding type itself.
func (m *ListModel) InitModel(typeName string, source ModelSource) {
	m.Init(typeName)
	m.source = source
	m.DefineProperty("count", Property{
		Get:    func() any { return m.source.RowCount() },
		Notify: "countChanged",
	})
}

// Rows returns every row in order.
func (m *ListModel) Rows() []any {
	n := m.source.RowCount()
	rows := make([]any, n)
	for i := 0; i < n; i++ {
		rows[i] = m.source.Data(i)
	}
	return rows
}

// Describe includes the current rows in the object snapshot.
func (m *ListModel) Describe() ObjectInfo {
	info := m.Base.Describe()
	info.Rows = m.Rows()
	return info
}

// DataChanged notifies listeners that rows first..last (inclusive) changed.
// The range is clamped to the current row count; an empty range is ignored.
func (m *ListModel) DataChanged(first, last int) {
	n := m.source.RowCount()
	if first < 0 {
		first = 0
	}
	if last >= n {
		last = n - 1
	}
	if first > last {
		return
	}
	rows := make([]any, 0, last-first+1)
	for i := first; i <= last; i++ {
		rows = append(rows, m.source.Data(i))
	}
	m.notify(Event{
		Kind:   RowsChanged,
		Object: m.id,
		First:  first,
		Last:   last,
		Rows:   rows,
	})
}
