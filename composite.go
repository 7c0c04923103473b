package main

// compositeMaps merges the four spatial-domain channels into the three
// renderer-facing maps. The centered wavenumber convention shifts the
// inverse transform by half a period per axis, so every spatial sample is
// multiplied by (−1)^(x+y) to restore continuity.
//
// Displacement map: (λ·Dx, Dy, λ·Dz, J). Derivative map: (∂h/∂x, ∂h/∂z,
// ∂Dx/∂x, ∂Dz/∂z). Foam map: scalar intensity in the first channel,
// accumulated where the surface Jacobian folds below the onset threshold and
// decayed at a rate proportional to dt, clamped to [0, 1].
func compositeMaps(chans [channelCount]*texField, displacement, derivatives, foam *texField, p *simParams, dt float64) {
	n := chans[0].n
	lambda := float32(p.lambda)
	decay := float32(1 - foamDecayRate*dt)
	if decay < 0 {
		decay = 0
	}
	parallelRows(n, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < n; x++ {
				sign := float32(1)
				if (x+y)&1 == 1 {
					sign = -1
				}
				c := chans[chDxDz].pairA(x, y)
				dx, dz := sign*float32(real(c)), sign*float32(imag(c))
				c = chans[chDyDxz].pairA(x, y)
				dy, dxz := sign*float32(real(c)), sign*float32(imag(c))
				c = chans[chSlope].pairA(x, y)
				slopeX, slopeZ := sign*float32(real(c)), sign*float32(imag(c))
				c = chans[chDxxDzz].pairA(x, y)
				dxx, dzz := sign*float32(real(c)), sign*float32(imag(c))

				jxx := 1 + lambda*dxx
				jzz := 1 + lambda*dzz
				jxz := lambda * dxz
				jac := jxx*jzz - jxz*jxz

				displacement.setTexel(x, y, lambda*dx, dy, lambda*dz, jac)
				derivatives.setTexel(x, y, slopeX, slopeZ, dxx, dzz)

				i := foam.base(x, y)
				f := foam.px[i] * decay
				if jac < foamOnset {
					f += (foamOnset - jac) * foamBias * float32(dt)
				}
				if f < 0 {
					f = 0
				} else if f > 1 {
					f = 1
				}
				foam.px[i] = f
				foam.px[i+1] = jac
			}
		}
	})
}
