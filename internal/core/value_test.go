package core_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/factori/internal/core"
)

func TestGetAs_ConvertsNumericAttributes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	attrs := core.Attrs{"Age": uint8(30), "Ratio": 2, "Tags": []any{"a", "b"}, "Owner": nil}

	age, err := core.GetAs[int](attrs, "Age")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(age).To(Equal(30))

	ratio, err := core.GetAs[float64](attrs, "Ratio")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ratio).To(Equal(2.0))

	tags, err := core.GetAs[[]string](attrs, "Tags")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(tags).To(Equal([]string{"a", "b"}))

	owner, err := core.GetAs[*passenger](attrs, "Owner")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(owner).To(BeNil())

	missing, err := core.GetAs[int](attrs, "Missing")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(missing).To(BeZero())
}

func TestGetAs_RejectsValuesThatDoNotConvert(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	attrs := core.Attrs{"Age": 300, "Name": "Michael"}

	_, err := core.GetAs[uint8](attrs, "Age")
	g.Expect(err).To(MatchError(core.ErrFieldType))
	g.Expect(err.Error()).To(ContainSubstring(`attribute "Age"`))

	_, err = core.GetAs[int](attrs, "Name")
	g.Expect(err).To(MatchError(core.ErrFieldType))
}

func TestGet_PanicsOnAnotherType(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	attrs := core.Attrs{"Age": uint8(30)}

	g.Expect(func() { core.Get[int](attrs, "Age") }).
		To(PanicWith(ContainSubstring(`attribute "Age" holds uint8, not int`)))
	g.Expect(core.Get[uint8](attrs, "Age")).To(Equal(uint8(30)))
}
