package pagination

import (
	"errors"
	"sort"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/EgorLis/go-catalog/internal/domain"
)

func TestParseCursor(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *int64
		wantErr bool
	}{
		{name: "empty means start", raw: "", want: nil},
		{name: "spaces only means start", raw: "   ", want: nil},
		{name: "valid", raw: "42", want: ptr(42)},
		{name: "non numeric", raw: "abc", wantErr: true},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-5", wantErr: true},
		{name: "float", raw: "1.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCursor(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrBadCursor) {
					t.Fatalf("want ErrBadCursor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("cursor = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("cursor = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{raw: "", want: DefaultLimit},
		{raw: "garbage", want: DefaultLimit},
		{raw: "10", want: 10},
		{raw: "0", want: 1},
		{raw: "-3", want: 1},
		{raw: "100", want: 100},
		{raw: "500", want: 100},
	}
	for _, tt := range tests {
		if got := ParseLimit(tt.raw); got != tt.want {
			t.Errorf("ParseLimit(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	base := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").From("t")

	cur := int64(10)
	sqlStr, args, err := Apply(base, "id", domain.ListPage{Cursor: &cur, Limit: 5}).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	want := "SELECT id FROM t WHERE id < $1 ORDER BY id DESC LIMIT 6"
	if sqlStr != want {
		t.Fatalf("sql = %q, want %q", sqlStr, want)
	}
	if len(args) != 1 || args[0] != cur {
		t.Fatalf("args = %v", args)
	}

	// без курсора — без условия на id
	sqlStr, args, err = Apply(base, "id", domain.ListPage{Limit: 5}).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	want = "SELECT id FROM t ORDER BY id DESC LIMIT 6"
	if sqlStr != want {
		t.Fatalf("sql = %q, want %q", sqlStr, want)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildPage(t *testing.T) {
	ident := func(n int64) int64 { return n }

	// ровно limit+1 строк: отрезаем лишнюю, есть курсор
	p := BuildPage([]int64{30, 29, 28, 27}, 3, ident)
	if !p.HasMore || p.NextCursor == nil || *p.NextCursor != 28 {
		t.Fatalf("page = %+v", p)
	}
	if len(p.Items) != 3 {
		t.Fatalf("items = %v", p.Items)
	}

	// меньше лимита: хвост
	p = BuildPage([]int64{2, 1}, 3, ident)
	if p.HasMore || p.NextCursor != nil || len(p.Items) != 2 {
		t.Fatalf("page = %+v", p)
	}

	// ровно limit без лишней: тоже хвост
	p = BuildPage([]int64{3, 2, 1}, 3, ident)
	if p.HasMore || p.NextCursor != nil {
		t.Fatalf("page = %+v", p)
	}

	// пустая выборка (курсор за концом таблицы) — валидная пустая страница
	p = BuildPage(nil, 3, ident)
	if p.HasMore || p.NextCursor != nil || len(p.Items) != 0 {
		t.Fatalf("page = %+v", p)
	}
}

// Модель таблицы: те же кейсет-условия, что строит Apply (id < cursor,
// DESC, limit+1), но над срезом в памяти.
type fakeTable struct {
	ids []int64 // произвольный порядок
}

func (ft *fakeTable) fetch(page domain.ListPage) []int64 {
	sorted := append([]int64(nil), ft.ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	var out []int64
	for _, id := range sorted {
		if page.Cursor != nil && id >= *page.Cursor {
			continue
		}
		out = append(out, id)
		if len(out) == page.Limit+1 {
			break
		}
	}
	return out
}

func (ft *fakeTable) page(page domain.ListPage) domain.Page[int64] {
	return BuildPage(ft.fetch(page), page.Limit, func(n int64) int64 { return n })
}

// Полнота: обход по курсорам отдаёт все N строк ровно по разу, строго по убыванию.
func TestPaginationCompleteness(t *testing.T) {
	const n = 57
	ft := &fakeTable{}
	for i := int64(1); i <= n; i++ {
		ft.ids = append(ft.ids, i)
	}

	var (
		seen   = map[int64]bool{}
		cursor *int64
		prev   = int64(n + 1)
		pages  int
	)
	for {
		p := ft.page(domain.ListPage{Cursor: cursor, Limit: 10})
		for _, id := range p.Items {
			if seen[id] {
				t.Fatalf("duplicate id %d", id)
			}
			if id >= prev {
				t.Fatalf("order violation: %d after %d", id, prev)
			}
			seen[id] = true
			prev = id
		}
		pages++
		if !p.HasMore {
			if p.NextCursor != nil {
				t.Fatalf("tail page has cursor %d", *p.NextCursor)
			}
			break
		}
		cursor = p.NextCursor
	}
	if len(seen) != n {
		t.Fatalf("saw %d of %d rows", len(seen), n)
	}
	if pages != 6 {
		t.Fatalf("pages = %d, want 6", pages)
	}
}

// Сценарий 25 товаров / limit 10: 10 + 10 + 5.
func TestPaginationScenario25(t *testing.T) {
	ft := &fakeTable{}
	for i := int64(1); i <= 25; i++ {
		ft.ids = append(ft.ids, i)
	}

	p1 := ft.page(domain.ListPage{Limit: 10})
	if len(p1.Items) != 10 || !p1.HasMore || p1.NextCursor == nil || *p1.NextCursor != 16 {
		t.Fatalf("page1 = %+v", p1)
	}
	p2 := ft.page(domain.ListPage{Cursor: p1.NextCursor, Limit: 10})
	if len(p2.Items) != 10 || !p2.HasMore {
		t.Fatalf("page2 = %+v", p2)
	}
	p3 := ft.page(domain.ListPage{Cursor: p2.NextCursor, Limit: 10})
	if len(p3.Items) != 5 || p3.HasMore || p3.NextCursor != nil {
		t.Fatalf("page3 = %+v", p3)
	}
}

// Вставка строки с бОльшим id между страницами не дублирует и не прячет
// строки первой страницы.
func TestPaginationStableUnderInsert(t *testing.T) {
	ft := &fakeTable{}
	for i := int64(1); i <= 25; i++ {
		ft.ids = append(ft.ids, i)
	}

	p1 := ft.page(domain.ListPage{Limit: 10})

	// конкурентная вставка
	ft.ids = append(ft.ids, 26)

	p2 := ft.page(domain.ListPage{Cursor: p1.NextCursor, Limit: 10})
	seen := map[int64]bool{}
	for _, id := range p1.Items {
		seen[id] = true
	}
	for _, id := range p2.Items {
		if seen[id] {
			t.Fatalf("page2 repeats id %d", id)
		}
		if id == 26 {
			t.Fatalf("page2 leaked the new row past the cursor")
		}
	}
	if *p1.NextCursor != 16 || p2.Items[0] != 15 {
		t.Fatalf("page2 skipped rows: cursor=%d first=%d", *p1.NextCursor, p2.Items[0])
	}
}

// Курсор за концом обхода (<= минимального id при DESC) — пустая валидная
// страница, не ошибка.
func TestPaginationCursorBeyondEnd(t *testing.T) {
	ft := &fakeTable{ids: []int64{5, 6, 7}}

	p := ft.page(domain.ListPage{Cursor: ptr(5), Limit: 10})
	if len(p.Items) != 0 || p.HasMore || p.NextCursor != nil {
		t.Fatalf("page = %+v", p)
	}

	// пустая таблица и любой курсор
	empty := &fakeTable{}
	p = empty.page(domain.ListPage{Cursor: ptr(999999999), Limit: 10})
	if len(p.Items) != 0 || p.HasMore || p.NextCursor != nil {
		t.Fatalf("page = %+v", p)
	}
}

func ptr(n int64) *int64 { return &n }
