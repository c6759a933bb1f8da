//go:build !linux
// +build !linux

package file

import "os"

var OPENFLAG = os.O_RDWR | os.O_CREATE

func (self *BlockFile) open(extra int) error {
	if f, err := os.OpenFile(self.path, OPENFLAG|extra, 0666); err != nil {
		return err
	} else {
		self.file = f
		self.opened = true
	}
	return nil
}
