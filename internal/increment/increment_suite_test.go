package increment_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIncrement(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Increment Suite")
}
