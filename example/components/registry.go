package components

import "github.com/pthm/hxlive"

// Init registers all components and their callbacks with the registry.
func Init(reg *hxlive.Registry) {
	reg.Add(CounterSchema, ProfileSchema)
	reg.Callbacks().Register(ProfileSavedCallback, profileSaved)
}
