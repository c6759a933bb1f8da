//go:build linux
// +build linux

package file

import "os"
import "syscall"

/*
Memo blocks are 512 bytes and the header is rewritten on every allocation,
so the O_DIRECT alignment rules cannot be met. Access times are not useful
for a side file.
*/
var OPENFLAG = os.O_RDWR | os.O_CREATE | syscall.O_NOATIME

func (self *BlockFile) open(extra int) error {
	if f, err := os.OpenFile(self.path, OPENFLAG|extra, 0666); err != nil {
		return err
	} else {
		self.file = f
		self.opened = true
	}
	return nil
}
