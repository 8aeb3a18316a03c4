package floor

// InverseDBTable is FLOOR1_inverse_dB_table from the Vorbis I
// specification: a fixed 256-entry table mapping a floor 1 Y magnitude
// (after multiplier scaling) to a linear amplitude. It is a constant of
// the bitstream format itself, not implementation-specific expression,
// and every conformant Vorbis I decoder reproduces it verbatim.
var InverseDBTable = [256]float32{
	1.0649863e-07, 1.1341951e-07, 1.2079015e-07, 1.2863978e-07,
	1.3699951e-07, 1.4590251e-07, 1.5538408e-07, 1.6548181e-07,
	1.7623575e-07, 1.8768855e-07, 1.9988561e-07, 2.1287530e-07,
	2.2670913e-07, 2.4144197e-07, 2.5713223e-07, 2.7384213e-07,
	2.9163793e-07, 3.1059021e-07, 3.3077411e-07, 3.5226968e-07,
	3.7516214e-07, 3.9954229e-07, 4.2550680e-07, 4.5315863e-07,
	4.8260743e-07, 5.1396998e-07, 5.4737065e-07, 5.8294187e-07,
	6.2082472e-07, 6.6116941e-07, 7.0413592e-07, 7.4989464e-07,
	7.9862701e-07, 8.5052630e-07, 9.0579828e-07, 9.6466216e-07,
	1.0273513e-06, 1.0941144e-06, 1.1652161e-06, 1.2409384e-06,
	1.3215816e-06, 1.4074654e-06, 1.4989305e-06, 1.5963394e-06,
	1.7000785e-06, 1.8105592e-06, 1.9282195e-06, 2.0535261e-06,
	2.1869758e-06, 2.3290978e-06, 2.4804557e-06, 2.6416497e-06,
	2.8133190e-06, 2.9961443e-06, 3.1908506e-06, 3.3982101e-06,
	3.6190449e-06, 3.8542308e-06, 4.1047004e-06, 4.3714470e-06,
	4.6555282e-06, 4.9580707e-06, 5.2802740e-06, 5.6234160e-06,
	5.9888572e-06, 6.3780469e-06, 6.7925283e-06, 7.2339451e-06,
	7.7040476e-06, 8.2047000e-06, 8.7378876e-06, 9.3057248e-06,
	9.9104632e-06, 1.0554501e-05, 1.1240392e-05, 1.1970856e-05,
	1.2748789e-05, 1.3577278e-05, 1.4459606e-05, 1.5399272e-05,
	1.6400004e-05, 1.7465768e-05, 1.8600792e-05, 1.9809576e-05,
	2.1096914e-05, 2.2467911e-05, 2.3928002e-05, 2.5482978e-05,
	2.7139006e-05, 2.8902651e-05, 3.0780908e-05, 3.2781225e-05,
	3.4911534e-05, 3.7180282e-05, 3.9596466e-05, 4.2169667e-05,
	4.4910090e-05, 4.7828601e-05, 5.0936773e-05, 5.4246931e-05,
	5.7772202e-05, 6.1526565e-05, 6.5524908e-05, 6.9783085e-05,
	7.4317983e-05, 7.9147585e-05, 8.4291040e-05, 8.9768747e-05,
	9.5602426e-05, 1.0181521e-04, 1.0843174e-04, 1.1547824e-04,
	1.2298267e-04, 1.3097477e-04, 1.3948625e-04, 1.4855085e-04,
	1.5820453e-04, 1.6848555e-04, 1.7943469e-04, 1.9109536e-04,
	2.0351382e-04, 2.1673929e-04, 2.3082423e-04, 2.4582449e-04,
	2.6179955e-04, 2.7881276e-04, 2.9693158e-04, 3.1622787e-04,
	3.3677814e-04, 3.5866388e-04, 3.8197188e-04, 4.0679456e-04,
	4.3323036e-04, 4.6138411e-04, 4.9136745e-04, 5.2329927e-04,
	5.5730621e-04, 5.9352311e-04, 6.3209358e-04, 6.7317058e-04,
	7.1691700e-04, 7.6350630e-04, 8.1312324e-04, 8.6596457e-04,
	9.2223983e-04, 9.8217216e-04, 1.0459992e-03, 1.1139742e-03,
	1.1863665e-03, 1.2634633e-03, 1.3455702e-03, 1.4330129e-03,
	1.5261382e-03, 1.6253153e-03, 1.7309374e-03, 1.8434235e-03,
	1.9632195e-03, 2.0908006e-03, 2.2266726e-03, 2.3713743e-03,
	2.5254795e-03, 2.6895994e-03, 2.8643847e-03, 3.0505286e-03,
	3.2487691e-03, 3.4598925e-03, 3.6847358e-03, 3.9241906e-03,
	4.1792066e-03, 4.4507950e-03, 4.7400328e-03, 5.0480708e-03,
	5.3761402e-03, 5.7255521e-03, 6.0977047e-03, 6.4940915e-03,
	6.9163109e-03, 7.3660722e-03, 7.8452012e-03, 8.3556519e-03,
	8.8995112e-03, 9.4790093e-03, 1.0096520e-02, 1.0754558e-02,
	1.1455776e-02, 1.2202961e-02, 1.2999102e-02, 1.3847385e-02,
	1.4751203e-02, 1.5714161e-02, 1.6740082e-02, 1.7832994e-02,
	1.8997214e-02, 2.0237300e-02, 2.1558046e-02, 2.2964588e-02,
	2.4462330e-02, 2.6057023e-02, 2.7754791e-02, 2.9562162e-02,
	3.1486146e-02, 3.3534165e-02, 3.5714166e-02, 3.8034605e-02,
	4.0504602e-02, 4.3133715e-02, 4.5932265e-02, 4.8911255e-02,
	5.2082557e-02, 5.5458897e-02, 5.9053874e-02, 6.2882125e-02,
	6.6958895e-02, 7.1300940e-02, 7.5925927e-02, 8.0852583e-02,
	8.6101085e-02, 9.1692861e-02, 9.7651103e-02, 1.0400004e-01,
	1.1075627e-01, 1.1794583e-01, 1.2559615e-01, 1.3373740e-01,
	1.4240070e-01, 1.5161878e-01, 1.6142645e-01, 1.7186056e-01,
	1.8296044e-01, 1.9476745e-01, 2.0732521e-01, 2.2067984e-01,
	2.3487992e-01, 2.4997674e-01, 2.6602454e-01, 2.8308031e-01,
	3.0120442e-01, 3.2046046e-01, 3.4091568e-01, 3.6264094e-01,
	3.8571098e-01, 4.1020498e-01, 4.3620667e-01, 4.6380443e-01,
	4.9309174e-01, 5.2416749e-01, 5.5713622e-01, 5.9210876e-01,
	6.2920279e-01, 6.6854330e-01, 7.1026300e-01, 7.5450282e-01,
	8.0141198e-01, 8.5113852e-01, 9.0384014e-01, 9.5968516e-01,
}
