package pp_test

import (
	"os"
	"path/filepath"

	. "github.com/platypus-platform/pp"
	"github.com/platypus-platform/pp/intent"
	"github.com/platypus-platform/pp/seed"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func environmentSet1(k string) string {
	switch k {
	case "APP":
		return "slug"
	case "BASEDIR":
		return "/tmp/slug"
	default:
		return ""
	}
}

var _ = Describe("Config", func() {
	DescribeTable("ExpandEnvironAndDecode", func(content string, result seed.Plan) {
		out := seed.Plan{}
		Expect(ExpandEnvironAndDecode([]byte(content), &out, environmentSet1)).ToNot(HaveOccurred())
		Expect(out).To(Equal(result))
	},
		Entry("example plan",
			`app: "${APP}"
cluster: development
hostname: host1
versions:
  e928e5ad8814441e7c503d7f6c9e55d72584c006: prep
  56d459e7c581b913ad5afa627064d62aea2cfac3: active
deploy_config:
  basedir: "${BASEDIR}"
  ports: [1212, 1231]
`,
			seed.Plan{
				App:      "slug",
				Cluster:  "development",
				Hostname: "host1",
				Versions: intent.VersionMap{
					"e928e5ad8814441e7c503d7f6c9e55d72584c006": intent.Prep,
					"56d459e7c581b913ad5afa627064d62aea2cfac3": intent.Active,
				},
				DeployConfig: intent.DeployConfig{
					Basedir: "/tmp/slug",
					Ports:   []int{1212, 1231},
				},
			},
		),
		Entry("unset variables expand to blanks",
			`app: "${MISSING}"
cluster: development
`,
			seed.Plan{Cluster: "development"},
		),
	)

	Describe("ExpandEnvironAndDecodeFile", func() {
		It("should ignore missing files", func() {
			out := seed.Plan{App: "unchanged"}
			Expect(ExpandEnvironAndDecodeFile(filepath.Join(GinkgoT().TempDir(), "missing.yml"), &out, environmentSet1)).To(Succeed())
			Expect(out.App).To(Equal("unchanged"))
		})

		It("should report malformed files", func() {
			path := filepath.Join(GinkgoT().TempDir(), "seed.yml")
			Expect(os.WriteFile(path, []byte("app: [unterminated"), 0600)).To(Succeed())
			Expect(ExpandEnvironAndDecodeFile(path, &seed.Plan{}, environmentSet1)).ToNot(Succeed())
		})
	})

	Describe("Environ", func() {
		It("should fall back to the process environment without files", func() {
			GinkgoT().Setenv("PP_TEST_ENVIRON", "process")
			mapping, err := Environ()
			Expect(err).ToNot(HaveOccurred())
			Expect(mapping("PP_TEST_ENVIRON")).To(Equal("process"))
		})

		It("should read dotenv files with the process environment taking precedence", func() {
			path := filepath.Join(GinkgoT().TempDir(), "seed.env")
			Expect(os.WriteFile(path, []byte("PP_TEST_APP=slug\nPP_TEST_CLUSTER=development\n"), 0600)).To(Succeed())
			GinkgoT().Setenv("PP_TEST_CLUSTER", "production")

			mapping, err := Environ(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(mapping("PP_TEST_APP")).To(Equal("slug"))
			Expect(mapping("PP_TEST_CLUSTER")).To(Equal("production"))
		})

		It("should report unreadable files", func() {
			_, err := Environ(filepath.Join(GinkgoT().TempDir(), "missing.env"))
			Expect(err).To(HaveOccurred())
		})
	})
})
