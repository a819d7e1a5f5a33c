package openfile

import "errors"

// Installers combines several hook sources behind one Installer. Each one is
// attempted in order with the same deliver; their failures are joined. Nil
// entries are skipped, and nil is returned when nothing is left.
func Installers(list ...Installer) Installer {
	var live []Installer
	for _, inst := range list {
		if inst != nil {
			live = append(live, inst)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return InstallerFunc(func(deliver func(string)) error {
		var errs []error
		for _, inst := range live {
			if err := inst.Install(deliver); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
