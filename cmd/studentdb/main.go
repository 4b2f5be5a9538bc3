package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/fulldump/studentdb/bootstrap"
	"github.com/fulldump/studentdb/configuration"
)

var banner = `
     _             _            _      _ _     
 ___| |_ _   _  __| | ___ _ __ | |_ __| | |__  
/ __| __| | | |/ _' |/ _ \ '_ \| __/ _' | '_ \ 
\__ \ |_| |_| | (_| |  __/ | | | || (_| | |_) |
|___/\__|\__,_|\__,_|\___|_| |_|\__\__,_|_.__/ 
                          version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	start, _ := bootstrap.Bootstrap(c)
	start()
}
