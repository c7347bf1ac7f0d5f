package factori_test

import (
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/toejough/factori"
)

func TestCreate_Defaults(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	vehicle := factori.New[Vehicle](t)
	g.Expect(vehicle).To(Equal(Vehicle{NumberWheels: 4, Electric: false}))

	passenger := factori.New[Passenger](t)
	g.Expect(passenger.Name).To(Equal("Michael"))
}

func TestCreate_OverrideField(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(factori.Create[Vehicle](factori.Set("NumberWheels", 3))).
		To(Equal(Vehicle{NumberWheels: 3, Electric: false}))
	g.Expect(factori.Create[Passenger](factori.Set("Name", "Tom"))).
		To(Equal(Passenger{Name: "Tom"}))
	g.Expect(factori.Create[Vehicle](factori.Set("NumberWheels", 8), factori.Set("Electric", true))).
		To(Equal(Vehicle{NumberWheels: 8, Electric: true}))
}

func TestCreate_Mixins(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(factori.New[Vehicle](t, factori.With("bike"))).To(Equal(Vehicle{NumberWheels: 2}))
	g.Expect(factori.New[Vehicle](t, factori.With("bike"), factori.Set("Electric", true))).
		To(Equal(Vehicle{NumberWheels: 2, Electric: true}))
	g.Expect(factori.New[Vehicle](t, factori.With("bike", "electric"))).
		To(Equal(Vehicle{NumberWheels: 2, Electric: true}))
	g.Expect(factori.New[Vehicle](t, factori.With("bike", "trike"))).To(Equal(Vehicle{NumberWheels: 3}))
}

func TestCreateVec_Overrides(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	vehicles := factori.NewVec[Vehicle](t, 5, factori.Set("NumberWheels", 2))
	g.Expect(vehicles).To(HaveLen(5))
	g.Expect(vehicles).To(HaveEach(Vehicle{NumberWheels: 2, Electric: false}))

	g.Expect(factori.NewVec[Vehicle](t, 3, factori.With("bike"))).To(HaveEach(HaveField("NumberWheels", uint8(2))))
	g.Expect(factori.CreateVec[Vehicle](0)).To(BeEmpty())
}

func TestCreate_NestedFactories(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	garage := factori.New[Garage](t)
	g.Expect(garage.Vehicles).To(HaveLen(3))
	g.Expect(garage.Vehicles[0]).To(Equal(Vehicle{NumberWheels: 4, Electric: false}))

	empty := factori.New[Garage](t, factori.Set("Vehicles", factori.MustCreateVec[Vehicle](0)))
	g.Expect(empty.Vehicles).To(BeEmpty())
}

func TestCreate_TransientAndBuilder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	user := factori.New[User](t, factori.Set("DoubleAge", true))
	g.Expect(user.Age).To(Equal(uint8(84)))
	g.Expect(user.Name).To(Equal("Richard"))
	g.Expect(uuid.Parse(user.ID)).Error().NotTo(HaveOccurred())

	_, err := factori.Create[User](factori.Set("Age", 200), factori.Set("DoubleAge", true))
	g.Expect(err).To(MatchError(factori.ErrBuilder))
}

func TestCreate_BuilderAcceptsOverridesOfAnotherNumericType(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	user, err := factori.Create[User](factori.Set("Age", uint8(30)))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(user.Age).To(Equal(uint8(30)))

	doubled, err := factori.Create[User](factori.Set("Age", uint8(30)), factori.Set("DoubleAge", true))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(doubled.Age).To(Equal(uint8(60)))

	_, err = factori.Create[User](factori.Set("Age", "thirty"))
	g.Expect(err).To(MatchError(factori.ErrBuilder))
	g.Expect(err).To(MatchError(factori.ErrFieldType))
}

func TestCreateVec_LazyIdentifiersAreDistinct(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	users := factori.NewVec[User](t, 10)
	ids := map[string]bool{}

	for _, user := range users {
		ids[user.ID] = true
	}

	g.Expect(ids).To(HaveLen(10))
}

func TestAttributes_LeaveOutTransients(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	attrs, err := factori.Attributes[User](factori.Set("Name", "Ada"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(attrs.Names()).To(Equal([]string{"Age", "ID", "Name"}))
	g.Expect(factori.Get[string](attrs, "Name")).To(Equal("Ada"))

	age, ok := factori.Lookup[int](attrs, "Age")
	g.Expect(ok).To(BeTrue())
	g.Expect(age).To(Equal(42))
}

func TestCreate_Failures(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := factori.Create[Vehicle](factori.With("hovercraft"))
	g.Expect(err).To(MatchError(factori.ErrMixinNotFound))

	_, err = factori.Create[Vehicle](factori.Set("Wings", 2))
	g.Expect(err).To(MatchError(factori.ErrUnknownField))

	_, err = factori.Create[struct{ Unregistered bool }]()
	g.Expect(err).To(MatchError(factori.ErrNoFactory))

	_, err = factori.CreateVec[Vehicle](-3)
	g.Expect(err).To(MatchError(factori.ErrNegativeCount))

	err = factori.Define[Vehicle]().Default("NumberWheels", 4).Register()
	g.Expect(err).To(MatchError(factori.ErrAlreadyRegistered))
}

func TestGet_PanicsOnWrongType(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	attrs := factori.Attrs{"Age": 42, "Nothing": nil}

	g.Expect(func() { factori.Get[string](attrs, "Age") }).To(PanicWith(ContainSubstring(`"Age" holds int`)))
	g.Expect(factori.Get[string](attrs, "Missing")).To(BeEmpty())
	g.Expect(factori.Get[*Vehicle](attrs, "Nothing")).To(BeNil())
}
