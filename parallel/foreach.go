// Package parallel contains the bounded ForEach loop, worker sizing and the ordered label hasher.
package parallel

import "runtime"
import "sync"

import "github.com/klauspost/cpuid/v2"

// Threads reports the number of workers worth running on this machine. It
// prefers the logical core count detected by cpuid and falls back to
// runtime.NumCPU when the CPU could not be identified. Never returns 0.
func Threads() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		if m := runtime.GOMAXPROCS(0); m < n {
			return m
		}
		return n
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// Describe returns a one line description of the CPU used for training logs.
func Describe() string {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = "unknown cpu"
	}
	simd := "scalar"
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ):
		simd = "avx512"
	case cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3):
		simd = "avx2"
	case cpuid.CPU.Supports(cpuid.ASIMD):
		simd = "neon"
	}
	return brand + " (" + simd + ")"
}

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body(i)
		}(i)
	}

	wg.Wait()
}
