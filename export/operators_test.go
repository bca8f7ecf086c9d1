package export

import "testing"

func TestScanFindsDeviceColorOperators(t *testing.T) {
	content := `q
1 1 1 rg
0 0 0 RG
0.5 g
0.2 G
0 0 0 1 k
.1 .2 .3 sc
72 720 Td
Q`

	ops := newOpScanner().Scan(content)

	byOp := map[string]ColorOp{}
	for _, op := range ops {
		byOp[op.Operator+op.Space] = op
	}

	rg, ok := byOp["rgrgb"]
	if !ok {
		t.Fatal("rg operator not found")
	}
	if len(rg.Values) != 3 || rg.Values[0] != 1 || rg.Stroke {
		t.Errorf("rg parsed wrong: %+v", rg)
	}

	stroke, ok := byOp["RGrgb"]
	if !ok || !stroke.Stroke {
		t.Errorf("RG should be a stroke operator: %+v", stroke)
	}

	gray, ok := byOp["ggray"]
	if !ok || len(gray.Values) != 1 || gray.Values[0] != 0.5 {
		t.Errorf("g parsed wrong: %+v", gray)
	}

	cmyk, ok := byOp["kcmyk"]
	if !ok || len(cmyk.Values) != 4 || cmyk.Values[3] != 1 {
		t.Errorf("k parsed wrong: %+v", cmyk)
	}

	sc, ok := byOp["scrgb"]
	if !ok || len(sc.Values) != 3 || sc.Values[2] != 0.3 {
		t.Errorf("sc parsed wrong: %+v", sc)
	}
}

func TestScanSkipsOperandTails(t *testing.T) {
	// The tail operands of a wider operator must not register as lower-arity
	// matches: ".3 sc" inside ".1 .2 .3 sc" is not a gray op, and "0.5 1 scn"
	// inside the cmyk scn is not an rgb op.
	ops := newOpScanner().Scan("1 0 0 rg 72 720 Td\n.1 .2 .3 sc\n0 0 0.5 1 scn")

	counts := map[string]int{}
	for _, op := range ops {
		counts[op.Space]++
	}
	if counts["gray"] != 0 {
		t.Errorf("found %d phantom gray operators", counts["gray"])
	}
	if counts["rgb"] != 2 {
		t.Errorf("want 2 rgb operators (rg and sc), got %d", counts["rgb"])
	}
	if counts["cmyk"] != 1 {
		t.Errorf("want 1 cmyk operator (scn), got %d", counts["cmyk"])
	}
}

func TestRewriteReplacesMatches(t *testing.T) {
	s := newOpScanner()
	content := "1 1 1 rg some text 1 1 1 rg"
	got := s.Rewrite(content, map[string]string{"1 1 1 rg": "0.1 0.1 0.1 rg"})
	want := "0.1 0.1 0.1 rg some text 0.1 0.1 0.1 rg"
	if got != want {
		t.Errorf("Rewrite: got %q, want %q", got, want)
	}
}
