package curve

import (
	"testing"

	"github.com/frost-threshold/frostcore/internal/testutils"
)

func TestScalarAddSubRoundtrip(t *testing.T) {
	a, err := RandomScalar()
	if err != nil {
		t.Fatal(err)
	}
	b, err := RandomScalar()
	if err != nil {
		t.Fatal(err)
	}

	sum := a.Add(b)
	back := sum.Sub(b)

	testutils.AssertBoolsEqual(t, "a recovered via (a+b)-b", true, a.Equal(back))
}

func TestScalarInverse(t *testing.T) {
	a, err := RandomScalar()
	if err != nil {
		t.Fatal(err)
	}

	inv := a.Inverse()
	one := a.Mul(inv)

	testutils.AssertBoolsEqual(t, "a * a^-1 == 1", true, one.Equal(ScalarFromUint64(1)))
}

func TestScalarFromBytesRejectsWrongLength(t *testing.T) {
	_, ok := ScalarFromBytes([]byte{0x01, 0x02, 0x03})
	testutils.AssertBoolsEqual(t, "short encoding rejected", false, ok)
}

func TestPointArithmetic(t *testing.T) {
	g := BasePoint()
	two := ScalarFromUint64(2)

	doubled := Add(g, g)
	scaled := ScalarBaseMul(two)

	testutils.AssertBoolsEqual(t, "G+G == 2*G", true, doubled.Equal(scaled))

	back := Sub(scaled, g)
	testutils.AssertBoolsEqual(t, "2G - G == G", true, back.Equal(g))
}

func TestIdentityIsAdditiveUnit(t *testing.T) {
	g := BasePoint()
	id := Identity()

	testutils.AssertBoolsEqual(t, "identity reported", true, id.IsIdentity())
	testutils.AssertBoolsEqual(t, "G + identity == G", true, Add(g, id).Equal(g))
}

func TestHashToScalarDiffersAcrossDomains(t *testing.T) {
	msg := []byte("hello")

	rho := HashToScalar("rho", msg)
	challenge := HashToScalar("challenge", msg)

	testutils.AssertBoolsEqual(t, "distinct domains yield distinct scalars", false, rho.Equal(challenge))
}

func TestHashToScalarDeterministic(t *testing.T) {
	msg := []byte("deterministic")

	a := HashToScalar("rho", msg)
	b := HashToScalar("rho", msg)

	testutils.AssertBoolsEqual(t, "same domain and input is deterministic", true, a.Equal(b))
}

func TestSerializeCompressedRoundtrip(t *testing.T) {
	g := BasePoint()
	encoded := g.SerializeCompressed()

	decoded, err := DecodePoint(encoded)
	if err != nil {
		t.Fatal(err)
	}

	testutils.AssertBoolsEqual(t, "decode(encode(G)) == G", true, g.Equal(decoded))
}
