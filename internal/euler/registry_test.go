package euler

import (
	"slices"
	"sync"
	"testing"
)

func TestDefaultFactoryRegistrations(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	want := []string{"apd", "binsplit", "series"}
	if got := f.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	for _, name := range want {
		if !f.Has(name) {
			t.Errorf("Has(%q) = false", name)
		}
	}
	if f.Has("gauss") {
		t.Error("Has(gauss) = true")
	}
}

func TestFactoryGetCaches(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	a, err := f.Get("series")
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Get("series")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Get should return the cached instance")
	}
	c, err := f.Create("series")
	if err != nil {
		t.Fatal(err)
	}
	if c == a {
		t.Error("Create should return a fresh instance")
	}
	if a.Name() != "Taylor Series (digit array)" {
		t.Errorf("Name() = %q", a.Name())
	}
}

func TestFactoryUnknown(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	if _, err := f.Get("nope"); err == nil {
		t.Error("Get(nope) should fail")
	}
	if _, err := f.Create("nope"); err == nil {
		t.Error("Create(nope) should fail")
	}
}

func TestFactoryRegister(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	if err := f.Register("", func() coreCalculator { return &SeriesCalculator{} }); err == nil {
		t.Error("empty name should be rejected")
	}
	if err := f.Register("x", nil); err == nil {
		t.Error("nil creator should be rejected")
	}

	old, _ := f.Get("series")
	if err := f.Register("series", func() coreCalculator { return &BinarySplittingCalculator{} }); err != nil {
		t.Fatal(err)
	}
	replaced, _ := f.Get("series")
	if replaced == old || replaced.Name() != "Binary Splitting (math/big)" {
		t.Errorf("re-registration not applied, got %q", replaced.Name())
	}
}

func TestFactoryGetAll(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	all := f.GetAll()
	if len(all) != len(f.List()) {
		t.Fatalf("GetAll returned %d calculators, want %d", len(all), len(f.List()))
	}
	for name, calc := range all {
		cached, err := f.Get(name)
		if err != nil {
			t.Fatal(err)
		}
		if cached != calc {
			t.Errorf("GetAll[%q] is not the cached instance", name)
		}
	}
}

func TestFactoryConcurrentGet(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	var wg sync.WaitGroup
	results := make([]Calculator, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = f.Get("binsplit")
		}()
	}
	wg.Wait()
	for _, c := range results[1:] {
		if c != results[0] {
			t.Fatal("concurrent Get returned different instances")
		}
	}
}

func TestGlobalFactory(t *testing.T) {
	t.Parallel()
	if !GlobalFactory().Has("series") {
		t.Error("global factory lacks the series calculator")
	}
}
