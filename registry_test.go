package factori_test

import (
	"reflect"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/factori"
	"pgregory.net/rapid"
)

// TestDefaultRegistry_HoldsInitFactories verifies that factories registered in init are
// visible through the default registry.
func TestDefaultRegistry_HoldsInitFactories(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg := factori.DefaultRegistry()
	g.Expect(factori.Has[Vehicle](reg)).To(BeTrue())
	g.Expect(factori.Has[struct{ Missing bool }](reg)).To(BeFalse())
	g.Expect(reg.Types()).To(ContainElements(reflect.TypeFor[Vehicle](), reflect.TypeFor[User]()))

	def, err := factori.LookupDefinition[Vehicle](reg)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(def.Mixins()).To(Equal([]string{"bike", "trike", "electric"}))
	g.Expect(def.Type()).To(Equal(reflect.TypeFor[Vehicle]()))
}

// TestNewRegistry_IsIsolated verifies that a fresh registry does not see the default
// registry's factories and vice versa.
func TestNewRegistry_IsIsolated(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg := factori.NewRegistry()
	g.Expect(factori.Has[Vehicle](reg)).To(BeFalse())

	g.Expect(factori.Define[Vehicle]().Default("NumberWheels", 6).RegisterIn(reg)).To(Succeed())
	g.Expect(factori.CreateIn[Vehicle](reg)).To(Equal(Vehicle{NumberWheels: 6}))
	g.Expect(factori.MustCreate[Vehicle]()).To(Equal(Vehicle{NumberWheels: 4}))

	vehicles, err := factori.CreateVecIn[Vehicle](reg, 2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(vehicles).To(HaveEach(Vehicle{NumberWheels: 6}))

	attrs, err := factori.AttributesIn[Vehicle](reg)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(attrs).To(HaveKeyWithValue("NumberWheels", 6))
}

// TestRegistry_ConcurrentRegistration verifies that exactly one of many concurrent
// registrations for the same type wins.
func TestRegistry_ConcurrentRegistration(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		numGoroutines := rapid.IntRange(2, 50).Draw(rt, "numGoroutines")
		reg := factori.NewRegistry()
		errs := make([]error, numGoroutines)

		var wg sync.WaitGroup

		wg.Add(numGoroutines)

		for i := range numGoroutines {
			go func(idx int) {
				defer wg.Done()

				errs[idx] = factori.Define[Passenger]().Default("Name", "Michael").RegisterIn(reg)
			}(i)
		}

		wg.Wait()

		winners := 0

		for _, err := range errs {
			if err == nil {
				winners++
			}
		}

		if winners != 1 {
			rt.Fatalf("expected exactly one registration to succeed, got %d", winners)
		}
	})
}

// TestRegistry_ConcurrentCreate verifies that concurrent creation from the same factory
// returns independent instances.
func TestRegistry_ConcurrentCreate(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	const numGoroutines = 100

	results := make([]Garage, numGoroutines)

	var wg sync.WaitGroup

	wg.Add(numGoroutines)

	for i := range numGoroutines {
		go func(idx int) {
			defer wg.Done()

			results[idx] = factori.MustCreate[Garage]()
			results[idx].Vehicles[0].NumberWheels = uint8(idx)
		}(i)
	}

	wg.Wait()

	for i := range numGoroutines {
		g.Expect(results[i].Vehicles).To(HaveLen(3))
		g.Expect(results[i].Vehicles[0].NumberWheels).To(Equal(uint8(i)))
		g.Expect(results[i].Vehicles[1].NumberWheels).To(Equal(uint8(4)))
	}
}
