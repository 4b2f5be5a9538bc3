package configuration

func Default() *Configuration {
	return &Configuration{
		HttpAddr:          "127.0.0.1:8080",
		Filename:          "students.txt",
		Format:            "text",
		TableSize:         100,
		MaxCourses:        10,
		Chain:             "slice",
		EnableCompression: true,
		CompressionLevel:  -1,
		ShowBanner:        true,
		ShowConfig:        false,
	}
}
