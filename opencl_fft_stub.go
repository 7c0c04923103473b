//go:build !opencl

package main

import "errors"

type openCLFFT struct{}

func newOpenCLFFT(_ *fftTable) (*openCLFFT, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (s *openCLFFT) transform(_ *texField, _ bool) error {
	return errors.New("OpenCL transform unavailable")
}

func (s *openCLFFT) Close() {}

func (s *openCLFFT) DeviceName() string { return "" }
