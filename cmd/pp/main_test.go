package main

import (
	"time"

	"github.com/alecthomas/kong"

	"github.com/platypus-platform/pp"
	"github.com/platypus-platform/pp/cmd/pp/cmdopts"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("command line", func() {
	type cli struct {
		cmdopts.Global
		Seed   cmdSeed   `cmd:""`
		Intent cmdIntent `cmd:""`
	}

	parse := func(args ...string) cli {
		var c cli
		parser, err := kong.New(&c, vars(), kong.Exit(func(int) { Fail("unexpected exit") }))
		Expect(err).ToNot(HaveOccurred())
		_, err = parser.Parse(args)
		Expect(err).ToNot(HaveOccurred())
		return c
	}

	It("should apply defaults, leaving the address to the store client", func() {
		c := parse("intent")
		Expect(c.Address).To(BeEmpty())
		Expect(c.Timeout).To(Equal(pp.DefaultTimeout))
	})

	It("should read the global options from the environment", func() {
		GinkgoT().Setenv(pp.EnvStoreAddress, "http://store.example.com:8500")
		GinkgoT().Setenv(pp.EnvStoreToken, "secret")
		GinkgoT().Setenv(pp.EnvStoreTimeout, "3s")

		c := parse("intent")
		Expect(c.Address).To(Equal("http://store.example.com:8500"))
		Expect(c.Token).To(Equal("secret"))
		Expect(c.Timeout).To(Equal(3 * time.Second))
	})

	It("should read the seed target from the environment", func() {
		GinkgoT().Setenv(pp.EnvApp, "slug")
		GinkgoT().Setenv(pp.EnvCluster, "development")
		GinkgoT().Setenv(pp.EnvHostname, "host1")

		c := parse("seed")
		Expect(c.Seed.App).To(Equal("slug"))
		Expect(c.Seed.Cluster).To(Equal("development"))
		Expect(c.Seed.Hostname).To(Equal("host1"))
	})

	It("should read the intent hostname from the environment", func() {
		GinkgoT().Setenv(pp.EnvHostname, "host2")
		Expect(parse("intent").Intent.Hostname).To(Equal("host2"))
	})
})
