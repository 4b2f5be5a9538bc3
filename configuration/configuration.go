package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Filename          string `usage:"snapshot file, loaded on start and saved on stop"`
	Format            string `usage:"snapshot format: text | json"`
	TableSize         int    `usage:"number of buckets of the index"`
	MaxCourses        int    `usage:"maximum courses per student, 0 means unbounded"`
	Chain             string `usage:"bucket chain implementation: slice | list"`
	ApiKey            string `usage:"API key, authentication is disabled when empty"`
	ApiSecret         string `usage:"API secret"`
	EnableCompression bool   `usage:"gzip responses when the client accepts it"`
	CompressionLevel  int    `usage:"gzip level, 1 fastest to 9 smallest, -1 default"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}
