package smoke

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
)

// Report constants.
const (
	percentageMultiplier = 100
	reportFilePermission = 0o600
	directoryPermission  = 0o750
)

// staticPages must all answer 200.
var staticPages = []string{"/", "/about", "/experience", "/skills", "/projects", "/contact", "/feedback", "/guestbook"}
