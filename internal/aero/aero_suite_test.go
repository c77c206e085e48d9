package aero_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAero(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Aero Suite")
}
