package currency

import "testing"

func TestFormat2D(t *testing.T) {
	t.Parallel()
	cases := []struct {
		a      Amount
		expect string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{1000, "10.00"},
		{2000, "20.00"},
		{1005, "10.05"},
		{12345, "123.45"},
	}
	for _, c := range cases {
		if s := c.a.Format2D(); s != c.expect {
			t.Errorf("Format2D(%d) = %q expected %q", uint32(c.a), s, c.expect)
		}
	}
}

func createTestNominalGroup(t *testing.T) *NominalGroup {
	ng := &NominalGroup{}
	ng.SetValid([]Nominal{500, 1000, 2000})
	if err := ng.Add(101, 1); err == nil {
		t.Fatal("expected invalid nominal")
	}
	if err := ng.Add(500, 2); err != nil {
		t.Fatal(err)
	}
	if err := ng.Add(1000, 1); err != nil {
		t.Fatal(err)
	}
	return ng
}

func TestNominalGroup(t *testing.T) {
	t.Parallel()

	ng := createTestNominalGroup(t)
	if total := ng.Total(); total != 2000 {
		t.Fatalf("expected total=2000 actual=%d", total)
	}
	if total := ng.Copy().Total(); total != 2000 {
		t.Fatalf("expected copy total=2000 actual=%d", total)
	}
	if s := ng.String(); s != "10.00:1,5.00:2,total:20.00" {
		t.Fatalf("unexpected String()=%q", s)
	}
	if !ng.Contains(2000) {
		t.Fatal("expected Contains(2000)")
	}
	if ng.Contains(200) {
		t.Fatal("unexpected Contains(200)")
	}
	if c, err := ng.Get(500); err != nil || c != 2 {
		t.Fatalf("Get(500) = %d,%v", c, err)
	}
	if _, err := ng.Get(42); err != ErrNominalInvalid {
		t.Fatalf("Get(42) expected ErrNominalInvalid actual=%v", err)
	}
	ng.Clear()
	if total := ng.Total(); total != 0 {
		t.Fatalf("expected total=0 after Clear actual=%d", total)
	}
}
