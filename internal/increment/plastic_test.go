package increment_test

import (
	"github.com/Technologicat/materials/internal/increment"
	"github.com/Technologicat/materials/internal/material"
	"github.com/Technologicat/materials/internal/voigt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ideal plastic material point", func() {
	const (
		youngs  = 200000.0
		poisson = 0.3
		yield   = 100.0
	)

	var m *material.IdealPlastic

	// the stress residual left in the prediction scales with the last
	// correction, so constraint checks run with a tighter tolerance
	tight := increment.Config{MaxIter: increment.DefaultMaxIter, Tol: 1e-12}

	BeforeEach(func() {
		var err error
		m, err = material.NewIdealPlastic(youngs, poisson, yield)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("under uniaxial strain control", func() {
		It("saturates the axial stress at the yield stress with free lateral surfaces", func() {
			for step := 0; step < 10; step++ {
				res, err := increment.SolveUniaxialStrain(m, 2.5e-4, 0.1, nil, tight)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Iterations).To(BeNumerically("<=", increment.DefaultMaxIter))
				Expect(m.Commit()).To(Succeed())

				stress := m.Committed().Stress
				for i := 1; i < voigt.Size; i++ {
					Expect(stress[i]).To(BeNumerically("~", 0, 1e-6))
				}
			}

			c := m.Committed()
			Expect(c.Stress[0]).To(BeNumerically("~", yield, 1e-6))
			Expect(c.Strain[0]).To(BeNumerically("~", 2.5e-3, 1e-15))
			Expect(m.CumulativePlasticStrain()).To(BeNumerically(">", 0))
			Expect(c.Time).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("tends to isochoric lateral contraction once plastic flow dominates", func() {
			for step := 0; step < 40; step++ {
				_, err := increment.SolveUniaxialStrain(m, 5e-4, 1, nil, increment.DefaultConfig())
				Expect(err).NotTo(HaveOccurred())
				Expect(m.Commit()).To(Succeed())
			}

			_, err := increment.SolveUniaxialStrain(m, 5e-4, 1, nil, increment.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			pr, ok := m.Predicted()
			Expect(ok).To(BeTrue())

			lateral := (pr.Strain[1] - m.Committed().Strain[1]) / 5e-4
			Expect(lateral).To(BeNumerically("~", -0.5, 1e-4))
		})
	})

	Context("under biaxial strain control", func() {
		It("keeps the prescribed axial and shear strains and frees the rest", func() {
			for step := 0; step < 8; step++ {
				res, err := increment.SolveBiaxialStrain(m, 1e-4, 1e-4, 1, nil, tight)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Strain[0]).To(Equal(1e-4))
				Expect(res.Strain[5]).To(Equal(1e-4))
				Expect(m.Commit()).To(Succeed())

				stress := m.Committed().Stress
				for i := 1; i < 5; i++ {
					Expect(stress[i]).To(BeNumerically("~", 0, 1e-6))
				}
			}

			s := m.Committed().Stress
			Expect(material.Equivalent(s.Deviator())).To(BeNumerically("~", yield, 1e-6))
		})
	})

	Context("under stress control", func() {
		It("follows the prescribed axial stress below yield", func() {
			for step := 0; step < 4; step++ {
				_, err := increment.SolveStressDrivenUniaxial(m, 20, 1, nil, increment.DefaultConfig())
				Expect(err).NotTo(HaveOccurred())
				Expect(m.Commit()).To(Succeed())
			}
			Expect(m.Committed().Stress[0]).To(BeNumerically("~", 80, 1e-8))
			Expect(m.Committed().Strain[0]).To(BeNumerically("~", 80/youngs, 1e-12))
		})

		It("reports a singular tangent when the prescribed stress exceeds the yield stress", func() {
			_, err := increment.SolveStressDrivenUniaxial(m, 150, 1, nil, increment.DefaultConfig())
			Expect(err).To(MatchError(increment.ErrSingularTangent))
			Expect(err).NotTo(MatchError(increment.ErrNotConverged))
		})
	})

	It("never commits on its own", func() {
		_, err := increment.SolveUniaxialStrain(m, 1e-3, 1, nil, increment.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Committed().Stress).To(Equal(voigt.Vector{}))
		Expect(m.Commit()).To(Succeed())
		Expect(m.Commit()).To(MatchError(material.ErrNoPrediction))
	})
})
