package slot

// catalog é a grade fixa de horários, igual para todo barbeiro e toda data.
var catalog = []string{
	"09:00 AM", "09:30 AM",
	"10:00 AM", "10:30 AM",
	"11:00 AM", "11:30 AM",
	"12:00 PM", "12:30 PM",
	"01:00 PM", "01:30 PM",
	"02:00 PM", "02:30 PM",
	"03:00 PM", "03:30 PM",
	"04:00 PM", "04:30 PM",
	"05:00 PM", "05:30 PM",
	"06:00 PM", "06:30 PM",
	"07:00 PM", "07:30 PM",
}

// Catalog devolve uma cópia da grade, na ordem de exibição.
func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// IsCatalogSlot compara pela forma de armazenamento, então "9:00 AM"
// também pertence à grade.
func IsCatalogSlot(display string) bool {
	storage, err := ToStorage(display)
	if err != nil {
		return false
	}
	for _, s := range catalog {
		if MustStorage(s) == storage {
			return true
		}
	}
	return false
}
