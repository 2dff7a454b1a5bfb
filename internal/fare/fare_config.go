package fare

import (
	"github.com/citymetro/kiosk/currency"
)

type Config struct {
	Destinations []DestinationConfig `hcl:"destination"`
	XXX_Nominals []int               `hcl:"nominals"` // use scaled `Nominals`, this is for decoding config only

	Nominals []currency.Nominal `hcl:"-"`
}

type DestinationConfig struct {
	Code      string `hcl:"code,key"`
	Name      string `hcl:"name"`
	XXX_Price int    `hcl:"price"` // use scaled `Price`, this is for decoding config only

	Price currency.Amount `hcl:"-"`
}
