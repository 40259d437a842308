package arena

import "testing"

func TestAllocBasic(t *testing.T) {
	a := New()

	b := a.Alloc(16, 0)
	if len(b) != 16 {
		t.Fatalf("Alloc(16) вернул срез длины %d", len(b))
	}
	for i := range b {
		if b[i] != 0 {
			t.Fatalf("Alloc должен возвращать занулённую память, байт %d = %d", i, b[i])
		}
	}

	st := a.Stats()
	if st.AllocCount != 1 {
		t.Errorf("AllocCount = %d, ожидали 1", st.AllocCount)
	}
	if st.TotalRequested != 16 {
		t.Errorf("TotalRequested = %d, ожидали 16", st.TotalRequested)
	}
	if st.ChunkCount != 1 {
		t.Errorf("ChunkCount = %d, ожидали 1", st.ChunkCount)
	}
}

func TestAllocAlignment(t *testing.T) {
	a := NewWithChunkSize(MinChunkSize)

	// Сдвигаем курсор на нечётную позицию.
	a.Alloc(3, 1)
	before := a.Stats().WastedBytes

	a.Alloc(8, 8)
	after := a.Stats().WastedBytes
	if after <= before {
		t.Errorf("выравнивание по 8 после 3 байт должно оставить padding: wasted %d -> %d", before, after)
	}
}

func TestAllocNewChunkWhenFull(t *testing.T) {
	a := NewWithChunkSize(MinChunkSize)

	a.Alloc(MinChunkSize-8, 1)
	if got := a.Stats().ChunkCount; got != 1 {
		t.Fatalf("ChunkCount = %d до переполнения", got)
	}

	a.Alloc(64, 1)
	if got := a.Stats().ChunkCount; got != 2 {
		t.Errorf("после переполнения ожидали второй чанк, ChunkCount = %d", got)
	}
}

func TestAllocOversizedRequest(t *testing.T) {
	a := NewWithChunkSize(MinChunkSize)

	// Выше лимита на запрос — nil, арена не для больших буферов.
	if got := a.Alloc(MaxAllocSize+1, 1); got != nil {
		t.Fatalf("запрос выше лимита должен вернуть nil, получили срез длины %d", len(got))
	}

	// На лимите — успех, с собственным чанком.
	big := a.Alloc(MaxAllocSize, 1)
	if len(big) != MaxAllocSize {
		t.Fatalf("запрос на лимите вернул срез длины %d", len(big))
	}
	if got := a.Stats().ChunkCount; got != 2 {
		t.Errorf("ChunkCount = %d, ожидали 2", got)
	}
}

func TestAllocString(t *testing.T) {
	a := New()

	s := a.AllocString([]byte("hello"))
	if len(s) != 6 {
		t.Fatalf("AllocString должен добавить NUL: длина %d", len(s))
	}
	if string(s[:5]) != "hello" || s[5] != 0 {
		t.Errorf("AllocString вернул %q", s)
	}

	// Стабильность: содержимое не должно меняться после новых аллокаций.
	for range 1000 {
		a.AllocString([]byte("filler filler filler"))
	}
	if string(s[:5]) != "hello" {
		t.Errorf("содержимое сдвинулось после дальнейших аллокаций: %q", s[:5])
	}
}

func TestResetAndClear(t *testing.T) {
	a := NewWithChunkSize(MinChunkSize)
	for range 100 {
		a.Alloc(100, 1)
	}
	if a.TotalUsed() == 0 {
		t.Fatal("TotalUsed должен быть ненулевым после аллокаций")
	}

	a.Clear()
	if a.TotalUsed() != 0 {
		t.Errorf("Clear должен обнулить текущие, TotalUsed = %d", a.TotalUsed())
	}
	if a.Stats().ChunkCount < 2 {
		t.Errorf("Clear не должен освобождать чанки, ChunkCount = %d", a.Stats().ChunkCount)
	}

	a.Reset()
	if got := a.Stats().ChunkCount; got != 1 {
		t.Errorf("Reset должен оставить ровно один чанк, ChunkCount = %d", got)
	}
	if a.TotalUsed() != 0 {
		t.Errorf("Reset должен обнулить использование, TotalUsed = %d", a.TotalUsed())
	}
}

func TestPeakUsage(t *testing.T) {
	a := New()
	a.Alloc(1000, 1)
	peak := a.Stats().PeakUsage
	a.Clear()
	a.Alloc(10, 1)
	if got := a.Stats().PeakUsage; got < peak {
		t.Errorf("PeakUsage не должен уменьшаться: %d < %d", got, peak)
	}
}

func TestBadAlignmentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Alloc с не-степенью двойки должен паниковать")
		}
	}()
	New().Alloc(8, 3)
}
