package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	ChannelsDir       string
	Port              string
	BaseUrl           string
	WorkerCount       int
	SchedulerInterval int
	RetentionDays     int
	APIAccessKey      string

	// Mail delivery configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
